package scraper

import (
	"net/http"

	"smart-news/internal/usecase/news"
)

// ScraperFactory creates fetcher instances for the non-RSS source types.
type ScraperFactory struct {
	client *http.Client
}

// NewScraperFactory creates a new ScraperFactory with the given HTTP client.
// The HTTP client should be configured with appropriate timeouts.
func NewScraperFactory(client *http.Client) *ScraperFactory {
	return &ScraperFactory{client: client}
}

// CreateScrapers creates and returns a map of all available scrapers.
// The keys are source type names and the values are the corresponding
// news.FeedFetcher implementations. The aggregator uses this map to route
// sources to the appropriate fetcher.
func (f *ScraperFactory) CreateScrapers() map[string]news.FeedFetcher {
	return map[string]news.FeedFetcher{
		"HTML": NewHTMLScraper(f.client),
	}
}
