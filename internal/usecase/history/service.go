package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"smart-news/internal/domain/entity"
	"smart-news/internal/observability/metrics"
	"smart-news/internal/repository"

	"github.com/google/uuid"
)

const (
	// maxConcurrentWrites bounds in-flight asynchronous history writes so a
	// slow database cannot accumulate unbounded goroutines.
	maxConcurrentWrites = 4

	// writeTimeout bounds one asynchronous write. The search response has
	// already been sent by then, so there is nothing to wait for.
	writeTimeout = 5 * time.Second
)

// Service provides search history use cases. RecordSearch satisfies the
// aggregator's Recorder interface.
type Service struct {
	Repo repository.HistoryRepository

	wg  sync.WaitGroup
	sem chan struct{}
}

// NewService creates a history Service around the given repository.
func NewService(repo repository.HistoryRepository) *Service {
	return &Service{
		Repo: repo,
		sem:  make(chan struct{}, maxConcurrentWrites),
	}
}

// RecordSearch persists a search result asynchronously. It returns
// immediately; the write happens on a background goroutine and its failure
// is logged and counted, never surfaced to the search caller.
func (s *Service) RecordSearch(ctx context.Context, result *entity.SearchResult) {
	record := &entity.SearchRecord{
		ID:           uuid.NewString(),
		Query:        result.Query,
		Language:     result.Language,
		ArticleCount: result.Total,
		Articles:     result.Articles,
		CreatedAt:    result.Timestamp,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.sem <- struct{}{}
		defer func() { <-s.sem }()

		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()

		if err := s.Repo.SaveSearch(writeCtx, record); err != nil {
			slog.Warn("failed to record search history",
				slog.String("search_id", record.ID),
				slog.String("query", record.Query),
				slog.Any("error", err))
			metrics.RecordHistoryWrite(false)
			return
		}
		metrics.RecordHistoryWrite(true)
	}()
}

// List returns history records ordered newest first, plus the total count
// for pagination.
func (s *Service) List(ctx context.Context, offset, limit int) ([]*entity.SearchRecord, int64, error) {
	records, err := s.Repo.ListSearches(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list searches: %w", err)
	}
	total, err := s.Repo.CountSearches(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count searches: %w", err)
	}
	return records, total, nil
}

// Get retrieves one history record by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.SearchRecord, error) {
	record, err := s.Repo.GetSearch(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get search: %w", err)
	}
	return record, nil
}

// Purge deletes all history records and returns how many were removed.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	deleted, err := s.Repo.PurgeSearches(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge searches: %w", err)
	}
	slog.Info("search history purged", slog.Int64("deleted", deleted))
	return deleted, nil
}

// Shutdown waits for in-flight history writes to finish, bounded by ctx.
func (s *Service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("history shutdown: %w", ctx.Err())
	}
}
