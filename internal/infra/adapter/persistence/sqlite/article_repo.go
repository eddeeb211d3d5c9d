// Package sqlite implements the repository interfaces on SQLite.
// It is used for local development and single-node deployments where
// running PostgreSQL is not worth the setup.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"smart-news/internal/domain/entity"
	"smart-news/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Upsert(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (id, title, description, link, published, source, language, image)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    description = excluded.description,
    published   = excluded.published,
    image       = excluded.image`
	if _, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Description, article.Link,
		article.Published, article.Source, article.Language, article.Image); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) ExistsByIDBatch(ctx context.Context, ids []string) (map[string]bool, error) {
	result := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
		result[id] = false
	}

	query := fmt.Sprintf(`SELECT id FROM articles WHERE id IN (%s)`, strings.Join(placeholders, ", "))
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ExistsByIDBatch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ExistsByIDBatch: Scan: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}

func (repo *ArticleRepo) ListRecent(ctx context.Context, language string, offset, limit int) ([]*entity.Article, error) {
	query := `
SELECT id, title, description, link, published, source, language, image
FROM articles`
	args := []interface{}{}
	if language != "" {
		query += ` WHERE language = ?`
		args = append(args, language)
	}
	query += `
ORDER BY published DESC
LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Link,
			&a.Published, &a.Source, &a.Language, &a.Image); err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
