package repository

import (
	"context"

	"smart-news/internal/domain/entity"
)

// HistoryRepository persists search history records.
type HistoryRepository interface {
	// SaveSearch stores one search record, including the returned articles.
	SaveSearch(ctx context.Context, record *entity.SearchRecord) error
	// GetSearch retrieves a record by its id.
	// Returns entity.ErrNotFound when no such record exists.
	GetSearch(ctx context.Context, id string) (*entity.SearchRecord, error)
	// ListSearches returns records ordered by creation time descending.
	ListSearches(ctx context.Context, offset, limit int) ([]*entity.SearchRecord, error)
	// CountSearches returns the total number of stored records.
	CountSearches(ctx context.Context) (int64, error)
	// PurgeSearches deletes every record and returns how many were removed.
	PurgeSearches(ctx context.Context) (int64, error)
}
