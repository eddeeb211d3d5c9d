// Package scraper provides implementations for fetching news source content.
// It covers RSS/Atom feeds via the gofeed library and HTML article listings
// via CSS-selector scraping, both wrapped in reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"smart-news/internal/resilience/circuitbreaker"
	"smart-news/internal/resilience/retry"
	"smart-news/internal/usecase/news"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// browserUserAgent identifies fetches as a conventional desktop browser.
// Several feeds (VnExpress among them) reject default client identifiers
// with 403 responses.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RSSFetcher implements news.FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// The client's timeout bounds each individual fetch; the aggregator relies
// on that bound rather than cancelling slow sources itself.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// It uses circuit breaker and retry logic for improved reliability.
// Returns a slice of FeedItem containing the parsed feed entries.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]news.FeedItem, error) {
	var items []news.FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		items = cbResult.([]news.FeedItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]news.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = browserUserAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]news.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		// Published優先、なければUpdatedを使用。どちらも無ければnilのまま
		// （正規化側が現在時刻を割り当てる）
		published := it.PublishedParsed
		if published == nil {
			published = it.UpdatedParsed
		}

		items = append(items, news.FeedItem{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Content:     it.Content,
			Published:   published,
		})
	}

	return items, nil
}
