package news

import (
	"context"
	"time"
)

// FeedFetcher is an interface for fetching a feed or article listing from a URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// FeedItem represents a single raw entry from a feed, pre-normalization.
type FeedItem struct {
	Title       string
	Link        string
	Description string     // summary text, may contain HTML
	Content     string     // full HTML content block when the feed provides one
	Published   *time.Time // nil when the feed carries no parseable date
}
