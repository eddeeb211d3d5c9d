// Package history provides the HTTP handlers for the search history
// endpoints: paginated listing, per-entry lookup, and the admin purge.
package history

import (
	"time"

	"smart-news/internal/domain/entity"
)

// DTO represents one search history entry in API responses.
type DTO struct {
	ID           string           `json:"id" example:"6f1e8a34-9c2b-4f7d-8e15-3a4b5c6d7e8f"`
	Query        string           `json:"query" example:"thời tiết"`
	Language     string           `json:"language" example:"vi"`
	ArticleCount int              `json:"article_count" example:"7"`
	Articles     []entity.Article `json:"articles,omitempty"`
	CreatedAt    time.Time        `json:"created_at" example:"2025-10-26T12:00:00Z"`
}

// PurgeResponse reports how many entries an admin purge removed.
type PurgeResponse struct {
	Deleted int64 `json:"deleted" example:"42"`
}

// toDTO converts a record. The stored articles are included only when
// includeArticles is set; the list view omits them to keep pages small.
func toDTO(record *entity.SearchRecord, includeArticles bool) DTO {
	dto := DTO{
		ID:           record.ID,
		Query:        record.Query,
		Language:     record.Language,
		ArticleCount: record.ArticleCount,
		CreatedAt:    record.CreatedAt,
	}
	if includeArticles {
		dto.Articles = record.Articles
	}
	return dto
}
