package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"smart-news/internal/domain/entity"
	"smart-news/internal/repository"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) repository.HistoryRepository {
	return &HistoryRepo{db: db}
}

func (repo *HistoryRepo) SaveSearch(ctx context.Context, record *entity.SearchRecord) error {
	articles, err := json.Marshal(record.Articles)
	if err != nil {
		return fmt.Errorf("SaveSearch: marshal articles: %w", err)
	}

	const query = `
INSERT INTO search_history (id, query, language, article_count, articles, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := repo.db.ExecContext(ctx, query,
		record.ID, record.Query, record.Language, record.ArticleCount,
		articles, record.CreatedAt); err != nil {
		return fmt.Errorf("SaveSearch: %w", err)
	}
	return nil
}

func (repo *HistoryRepo) GetSearch(ctx context.Context, id string) (*entity.SearchRecord, error) {
	const query = `
SELECT id, query, language, article_count, articles, created_at
FROM search_history
WHERE id = $1`

	record, err := scanRecord(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("GetSearch: %w", err)
	}
	return record, nil
}

func (repo *HistoryRepo) ListSearches(ctx context.Context, offset, limit int) ([]*entity.SearchRecord, error) {
	const query = `
SELECT id, query, language, article_count, articles, created_at
FROM search_history
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListSearches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.SearchRecord, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ListSearches: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (repo *HistoryRepo) CountSearches(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountSearches: %w", err)
	}
	return count, nil
}

func (repo *HistoryRepo) PurgeSearches(ctx context.Context) (int64, error) {
	result, err := repo.db.ExecContext(ctx, `DELETE FROM search_history`)
	if err != nil {
		return 0, fmt.Errorf("PurgeSearches: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PurgeSearches: RowsAffected: %w", err)
	}
	return deleted, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*entity.SearchRecord, error) {
	var record entity.SearchRecord
	var articles []byte
	if err := row.Scan(&record.ID, &record.Query, &record.Language,
		&record.ArticleCount, &articles, &record.CreatedAt); err != nil {
		return nil, err
	}
	if len(articles) > 0 {
		if err := json.Unmarshal(articles, &record.Articles); err != nil {
			return nil, fmt.Errorf("unmarshal articles: %w", err)
		}
	}
	return &record, nil
}
