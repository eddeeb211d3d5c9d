package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"smart-news/internal/domain/entity"
	pg "smart-news/internal/infra/adapter/persistence/postgres"
)

func sampleRecord() *entity.SearchRecord {
	return &entity.SearchRecord{
		ID:           "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Query:        "lãi suất",
		Language:     "vi",
		ArticleCount: 1,
		Articles:     []entity.Article{*sampleArticle()},
		CreatedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func recordRows(t *testing.T, records ...*entity.SearchRecord) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "query", "language", "article_count", "articles", "created_at",
	})
	for _, r := range records {
		articles, err := json.Marshal(r.Articles)
		if err != nil {
			t.Fatalf("marshal articles: %v", err)
		}
		rows.AddRow(r.ID, r.Query, r.Language, r.ArticleCount, articles, r.CreatedAt)
	}
	return rows
}

func TestHistoryRepo_SaveSearch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	r := sampleRecord()
	articles, _ := json.Marshal(r.Articles)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO search_history")).
		WithArgs(r.ID, r.Query, r.Language, r.ArticleCount, articles, r.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewHistoryRepo(db)
	if err := repo.SaveSearch(context.Background(), r); err != nil {
		t.Fatalf("SaveSearch err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestHistoryRepo_GetSearch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := sampleRecord()
	mock.ExpectQuery(regexp.QuoteMeta("FROM search_history")).
		WithArgs(want.ID).
		WillReturnRows(recordRows(t, want))

	repo := pg.NewHistoryRepo(db)
	got, err := repo.GetSearch(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("GetSearch err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryRepo_GetSearch_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM search_history")).
		WithArgs("no-such-id").
		WillReturnRows(recordRows(t))

	repo := pg.NewHistoryRepo(db)
	_, err := repo.GetSearch(context.Background(), "no-such-id")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want entity.ErrNotFound", err)
	}
}

func TestHistoryRepo_ListSearches(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := sampleRecord()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(20, 0).
		WillReturnRows(recordRows(t, want))

	repo := pg.NewHistoryRepo(db)
	got, err := repo.ListSearches(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("ListSearches err=%v", err)
	}
	if diff := cmp.Diff([]*entity.SearchRecord{want}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryRepo_PurgeSearches(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM search_history")).
		WillReturnResult(sqlmock.NewResult(0, 7))

	repo := pg.NewHistoryRepo(db)
	deleted, err := repo.PurgeSearches(context.Background())
	if err != nil {
		t.Fatalf("PurgeSearches err=%v", err)
	}
	if deleted != 7 {
		t.Fatalf("deleted = %d, want 7", deleted)
	}
}

func TestHistoryRepo_CountSearches(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM search_history")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := pg.NewHistoryRepo(db)
	got, err := repo.CountSearches(context.Background())
	if err != nil {
		t.Fatalf("CountSearches err=%v", err)
	}
	if got != 3 {
		t.Fatalf("CountSearches = %d, want 3", got)
	}
}
