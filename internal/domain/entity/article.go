// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and SourceConfig, along with
// their validation rules and domain-specific errors.
package entity

import (
	"crypto/md5" //nolint:gosec // article ids are cache keys, not a security boundary
	"encoding/hex"
	"time"
)

// MinTitleLength is the minimum number of characters a feed entry title must
// have to be accepted during normalization. Entries below the threshold are
// treated as noise (ads, separators, empty items), not content.
const MinTitleLength = 5

// PlaceholderImageURL is substituted when a feed entry carries no usable
// thumbnail in any of its HTML content blocks.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?w=400&h=250&fit=crop"

// Article represents a normalized news article produced from a raw feed entry.
// Instances are immutable once constructed: the aggregation pipeline builds
// them per search call and never mutates them afterwards.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published"`
	Source      string    `json:"source"`
	Language    string    `json:"language"`
	Image       string    `json:"image"`
}

// ArticleID derives the stable identifier for an article from its title and
// link. The same (title, link) pair always produces the same id across
// fetches: id = first 12 hex chars of md5(title || link).
func ArticleID(title, link string) string {
	sum := md5.Sum([]byte(title + link)) //nolint:gosec // stable id, not auth
	return hex.EncodeToString(sum[:])[:12]
}

// ValidTitle reports whether a feed entry title passes the minimum-length
// threshold. Length is counted in runes so multi-byte titles (Vietnamese,
// Chinese) are not over-counted.
func ValidTitle(title string) bool {
	return len([]rune(title)) >= MinTitleLength
}

// SearchResult is the response of one aggregation call. It is created fresh
// per request and never cached across requests.
type SearchResult struct {
	Articles  []Article `json:"articles"`
	Total     int       `json:"total"`
	Query     string    `json:"query"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}
