// Package source provides the read-only HTTP surface over the configured
// news source tables.
package source

import "smart-news/internal/domain/entity"

// DTO represents the JSON structure for one configured news source.
// Selector details of HTML-list sources are internal and not exposed.
type DTO struct {
	Name       string `json:"name" example:"VnExpress"`
	FeedURL    string `json:"feed_url" example:"https://vnexpress.net/rss/tin-moi-nhat.rss"`
	Language   string `json:"language" example:"vi"`
	SourceType string `json:"source_type" example:"RSS"`
}

// ListResponse groups sources by language.
type ListResponse struct {
	Languages []string         `json:"languages"`
	Sources   map[string][]DTO `json:"sources"`
}

func toDTO(src entity.SourceConfig) DTO {
	sourceType := src.SourceType
	if sourceType == "" {
		sourceType = "RSS"
	}
	return DTO{
		Name:       src.Name,
		FeedURL:    src.FeedURL,
		Language:   src.Language,
		SourceType: sourceType,
	}
}

func toDTOs(srcs []entity.SourceConfig) []DTO {
	out := make([]DTO, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, toDTO(src))
	}
	return out
}
