// Package news provides the HTTP handler for multi-source news search.
package news

import (
	"time"

	"smart-news/internal/domain/entity"
)

// maxQueryLength bounds the search query. Longer inputs are junk or abuse,
// not real searches.
const maxQueryLength = 200

// SearchRequest is the JSON body of a search call.
type SearchRequest struct {
	Query    string `json:"query" example:"thời tiết"`
	Language string `json:"language" example:"vi"`
	Limit    int    `json:"limit" example:"10"`
}

// ArticleDTO represents one article in a search response.
type ArticleDTO struct {
	ID          string    `json:"id" example:"a1b2c3d4e5f6"`
	Title       string    `json:"title" example:"Dự báo thời tiết hôm nay"`
	Description string    `json:"description"`
	Link        string    `json:"link" example:"https://vnexpress.net/..."`
	Published   time.Time `json:"published" example:"2025-10-26T10:00:00Z"`
	Source      string    `json:"source" example:"VnExpress"`
	Language    string    `json:"language" example:"vi"`
	Image       string    `json:"image"`
}

// SearchResponse is the JSON body of a search result.
type SearchResponse struct {
	Articles  []ArticleDTO `json:"articles"`
	Total     int          `json:"total"`
	Query     string       `json:"query"`
	Language  string       `json:"language"`
	Timestamp time.Time    `json:"timestamp"`
}

func toArticleDTO(a entity.Article) ArticleDTO {
	return ArticleDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Link:        a.Link,
		Published:   a.Published,
		Source:      a.Source,
		Language:    a.Language,
		Image:       a.Image,
	}
}

func toSearchResponse(result *entity.SearchResult) SearchResponse {
	articles := make([]ArticleDTO, 0, len(result.Articles))
	for _, a := range result.Articles {
		articles = append(articles, toArticleDTO(a))
	}
	return SearchResponse{
		Articles:  articles,
		Total:     result.Total,
		Query:     result.Query,
		Language:  result.Language,
		Timestamp: result.Timestamp,
	}
}
