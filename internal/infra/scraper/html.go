package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smart-news/internal/domain/entity"
	"smart-news/internal/resilience/circuitbreaker"
	"smart-news/internal/resilience/retry"
	"smart-news/internal/usecase/news"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB
)

// HTMLScraper implements news.FeedFetcher for sources that publish no feed.
// It parses the source's listing page with goquery and extracts articles
// using the CSS selectors configured on the source.
type HTMLScraper struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewHTMLScraper creates a new HTMLScraper with the given HTTP client.
// It automatically configures circuit breaker and retry logic for resilience.
func NewHTMLScraper(client *http.Client) *HTMLScraper {
	return &HTMLScraper{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.HTMLScraperConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses articles from an HTML listing page.
// It reads the ScraperConfig attached to the context by the aggregator and
// uses it to locate article elements.
func (h *HTMLScraper) Fetch(ctx context.Context, sourceURL string) ([]news.FeedItem, error) {
	config := news.ScraperConfigFromContext(ctx)
	if config == nil {
		return nil, errors.New("scraper config not found in context")
	}

	var items []news.FeedItem

	retryErr := retry.WithBackoff(ctx, h.retryConfig, func() error {
		cbResult, err := h.circuitBreaker.Execute(func() (interface{}, error) {
			return h.doFetch(ctx, sourceURL, config)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("html scraper circuit breaker open, request rejected",
					slog.String("service", "html-scraper"),
					slog.String("url", sourceURL),
					slog.String("state", h.circuitBreaker.State().String()))
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

// doFetch performs the actual scraping without retry or circuit breaker.
func (h *HTMLScraper) doFetch(ctx context.Context, sourceURL string, config *entity.ScraperConfig) ([]news.FeedItem, error) {
	if err := validateScrapeURL(sourceURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	doc, err := h.fetchHTML(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetch HTML failed: %w", err)
	}

	items := h.extractItems(doc, config)
	if len(items) == 0 {
		return nil, fmt.Errorf("no items found with selector: %s", config.ItemSelector)
	}

	return items, nil
}

// fetchHTML fetches and parses HTML from the given URL.
func (h *HTMLScraper) fetchHTML(ctx context.Context, urlStr string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	limitedReader := io.LimitReader(resp.Body, maxBodySize)

	doc, err := goquery.NewDocumentFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}

// extractItems extracts feed items from the HTML document using CSS selectors.
func (h *HTMLScraper) extractItems(doc *goquery.Document, config *entity.ScraperConfig) []news.FeedItem {
	var items []news.FeedItem

	doc.Find(config.ItemSelector).Each(func(i int, itemEl *goquery.Selection) {
		title := strings.TrimSpace(itemEl.Find(config.TitleSelector).Text())
		if title == "" {
			slog.Debug("skipping item with empty title", slog.Int("index", i))
			return
		}

		itemURL := ""
		if config.URLSelector != "" {
			if href, exists := itemEl.Find(config.URLSelector).Attr("href"); exists {
				itemURL = strings.TrimSpace(href)
			}
		}
		if itemURL == "" {
			slog.Debug("skipping item with empty URL", slog.Int("index", i), slog.String("title", title))
			return
		}
		itemURL = makeAbsoluteURL(itemURL, config.URLPrefix)

		description := ""
		if config.DescSelector != "" {
			description = strings.TrimSpace(itemEl.Find(config.DescSelector).Text())
		}

		var published *time.Time
		if config.DateSelector != "" {
			dateStr := strings.TrimSpace(itemEl.Find(config.DateSelector).Text())
			published = parseDate(dateStr, config.DateFormat)
		}

		items = append(items, news.FeedItem{
			Title:       title,
			Link:        itemURL,
			Description: description,
			Published:   published,
		})
	})

	return items
}

// validateScrapeURL checks if a URL is safe to fetch.
// URLs on 127.0.0.1 with ephemeral ports (httptest servers) are allowed.
func validateScrapeURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s (only http/https allowed)", u.Scheme)
	}

	// httptestサーバー（127.0.0.1のエフェメラルポート）は許可する
	if u.Hostname() == "127.0.0.1" && u.Port() != "" {
		portNum := 0
		if _, err := fmt.Sscanf(u.Port(), "%d", &portNum); err == nil {
			if portNum >= 32768 && portNum <= 65535 {
				return nil
			}
		}
	}

	ips, err := net.LookupIP(u.Hostname())
	if err != nil {
		return fmt.Errorf("DNS lookup failed: %w", err)
	}

	// SSRF対策: プライベートIPアドレスをブロック
	for _, ip := range ips {
		if entity.IsPrivateIP(ip) {
			return fmt.Errorf("private IP address detected: %s", ip)
		}
	}

	return nil
}

// parseDate parses a date string using the given format.
// Returns nil when parsing fails so the normalizer assigns its own default.
func parseDate(dateStr string, format string) *time.Time {
	if dateStr == "" {
		return nil
	}

	if format == "" {
		format = "Jan 2, 2006"
	}

	if t, err := time.Parse(format, dateStr); err == nil {
		return &t
	}

	// Try common formats as fallback
	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
		"Jan 2, 2006",
		"January 2, 2006",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, dateStr); err == nil {
			return &t
		}
	}

	slog.Warn("failed to parse date",
		slog.String("date_str", dateStr),
		slog.String("format", format))
	return nil
}

// makeAbsoluteURL converts a relative URL to absolute using the given prefix.
func makeAbsoluteURL(urlStr string, prefix string) string {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return urlStr
	}

	if prefix == "" {
		return urlStr
	}

	prefix = strings.TrimRight(prefix, "/")
	urlStr = strings.TrimLeft(urlStr, "/")

	return prefix + "/" + urlStr
}
