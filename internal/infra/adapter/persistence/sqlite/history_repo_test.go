package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"smart-news/internal/domain/entity"
	"smart-news/internal/infra/adapter/persistence/sqlite"
	"smart-news/internal/infra/db"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.MigrateUp(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func testRecord(id string, createdAt time.Time) *entity.SearchRecord {
	return &entity.SearchRecord{
		ID:           id,
		Query:        "lãi suất",
		Language:     "vi",
		ArticleCount: 1,
		Articles: []entity.Article{{
			ID:        "a1b2c3d4e5f6",
			Title:     "Ngân hàng giảm lãi suất",
			Link:      "https://news.example/1",
			Published: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			Source:    "VnExpress",
			Language:  "vi",
			Image:     entity.PlaceholderImageURL,
		}},
		CreatedAt: createdAt,
	}
}

func TestHistoryRepo_SaveAndGet(t *testing.T) {
	repo := sqlite.NewHistoryRepo(newTestDB(t))
	ctx := context.Background()

	want := testRecord("rec-1", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err := repo.SaveSearch(ctx, want); err != nil {
		t.Fatalf("SaveSearch err=%v", err)
	}

	got, err := repo.GetSearch(ctx, "rec-1")
	if err != nil {
		t.Fatalf("GetSearch err=%v", err)
	}
	if got.Query != want.Query || got.Language != want.Language || got.ArticleCount != want.ArticleCount {
		t.Errorf("record mismatch: got %+v", got)
	}
	if len(got.Articles) != 1 || got.Articles[0].Title != want.Articles[0].Title {
		t.Errorf("articles not round-tripped: %+v", got.Articles)
	}
}

func TestHistoryRepo_GetSearch_NotFound(t *testing.T) {
	repo := sqlite.NewHistoryRepo(newTestDB(t))

	_, err := repo.GetSearch(context.Background(), "missing")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want entity.ErrNotFound", err)
	}
}

func TestHistoryRepo_ListSearches_OrderAndPagination(t *testing.T) {
	repo := sqlite.NewHistoryRepo(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"rec-old", "rec-mid", "rec-new"} {
		if err := repo.SaveSearch(ctx, testRecord(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveSearch err=%v", err)
		}
	}

	records, err := repo.ListSearches(ctx, 0, 2)
	if err != nil {
		t.Fatalf("ListSearches err=%v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != "rec-new" || records[1].ID != "rec-mid" {
		t.Errorf("order = [%s, %s], want newest first", records[0].ID, records[1].ID)
	}

	count, err := repo.CountSearches(ctx)
	if err != nil {
		t.Fatalf("CountSearches err=%v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestHistoryRepo_PurgeSearches(t *testing.T) {
	repo := sqlite.NewHistoryRepo(newTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"rec-1", "rec-2"} {
		if err := repo.SaveSearch(ctx, testRecord(id, time.Now().UTC())); err != nil {
			t.Fatalf("SaveSearch err=%v", err)
		}
	}

	deleted, err := repo.PurgeSearches(ctx)
	if err != nil {
		t.Fatalf("PurgeSearches err=%v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	count, _ := repo.CountSearches(ctx)
	if count != 0 {
		t.Errorf("count after purge = %d, want 0", count)
	}
}
