package entity

import "time"

// SearchRecord is one persisted search history entry. The articles returned
// to the caller are stored alongside the query so the history view can
// replay what the user actually saw, even after the feeds moved on.
type SearchRecord struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Language     string    `json:"language"`
	ArticleCount int       `json:"article_count"`
	Articles     []Article `json:"articles"`
	CreatedAt    time.Time `json:"created_at"`
}
