package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smart-news/internal/domain/entity"
	"smart-news/internal/observability/metrics"
	"smart-news/internal/repository"
	"smart-news/internal/resilience/retry"
	"smart-news/internal/usecase/news"

	"golang.org/x/sync/errgroup"
)

// Crawler walks every configured source of every language, normalizes the
// entries, and upserts them into the article store. One run is bounded by
// the worker's CrawlTimeout; per-source failures are logged and skipped.
type Crawler struct {
	Sources       map[string][]entity.SourceConfig
	FeedFetcher   news.FeedFetcher
	WebScrapers   map[string]news.FeedFetcher
	Articles      repository.ArticleRepository
	MaxConcurrent int

	retryConfig retry.Config
}

// NewCrawler creates a crawler over the given source tables.
func NewCrawler(
	sources map[string][]entity.SourceConfig,
	feedFetcher news.FeedFetcher,
	webScrapers map[string]news.FeedFetcher,
	articles repository.ArticleRepository,
	maxConcurrent int,
) *Crawler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Crawler{
		Sources:       sources,
		FeedFetcher:   feedFetcher,
		WebScrapers:   webScrapers,
		Articles:      articles,
		MaxConcurrent: maxConcurrent,
		retryConfig:   retry.CrawlConfig(),
	}
}

// Run crawls all sources once. It returns an error only when the run as a
// whole could not proceed; individual source failures are swallowed.
func (c *Crawler) Run(ctx context.Context) error {
	start := time.Now()

	total := 0
	for _, srcs := range c.Sources {
		total += len(srcs)
	}
	if total == 0 {
		return fmt.Errorf("no sources configured")
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.MaxConcurrent)

	for _, srcs := range c.Sources {
		for _, src := range srcs {
			src := src
			eg.Go(func() error {
				c.crawlSource(gctx, src)
				return nil
			})
		}
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("crawl run aborted: %w", err)
	}

	if count, err := c.Articles.Count(ctx); err == nil {
		metrics.UpdateArticlesStored(int(count))
	}

	slog.Info("crawl run completed",
		slog.Int("sources", total),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// crawlSource fetches, normalizes, and stores one source's entries.
func (c *Crawler) crawlSource(ctx context.Context, src entity.SourceConfig) {
	start := time.Now()

	if src.Scraper != nil {
		ctx = news.WithScraperConfig(ctx, src.Scraper)
	}

	var items []news.FeedItem
	err := retry.WithBackoff(ctx, c.retryConfig, func() error {
		var fetchErr error
		items, fetchErr = c.selectFetcher(src).Fetch(ctx, src.FeedURL)
		return fetchErr
	})
	if err != nil {
		slog.Warn("crawl source failed",
			slog.String("source", src.Name),
			slog.String("feed_url", src.FeedURL),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(src.Name, "fetch_failed")
		return
	}

	now := time.Now()
	articles := make([]*entity.Article, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		article, ok := news.Normalize(item, src, now)
		if !ok {
			continue
		}
		articles = append(articles, &article)
		ids = append(ids, article.ID)
	}

	// 既存IDをバッチで引き、新規件数をログに出す。upsert自体は全件行う
	// （既存行もpublishedや画像の更新を受ける）
	known, err := c.Articles.ExistsByIDBatch(ctx, ids)
	if err != nil {
		slog.Warn("existence check failed, treating all as new",
			slog.String("source", src.Name),
			slog.Any("error", err))
		known = map[string]bool{}
	}

	stored, fresh := 0, 0
	for _, article := range articles {
		if err := c.Articles.Upsert(ctx, article); err != nil {
			slog.Warn("article upsert failed",
				slog.String("source", src.Name),
				slog.String("article_id", article.ID),
				slog.Any("error", err))
			metrics.RecordFeedCrawlError(src.Name, "store_failed")
			continue
		}
		stored++
		if !known[article.ID] {
			fresh++
		}
	}

	metrics.RecordFeedCrawl(src.Name, time.Since(start), stored)
	slog.Info("source crawled",
		slog.String("source", src.Name),
		slog.Int("entries", len(items)),
		slog.Int("stored", stored),
		slog.Int("new", fresh),
		slog.Duration("duration", time.Since(start)))
}

// selectFetcher mirrors the search path's routing: RSS by default, source
// type specific scrapers when configured.
func (c *Crawler) selectFetcher(src entity.SourceConfig) news.FeedFetcher {
	if src.SourceType == "" || src.SourceType == "RSS" {
		return c.FeedFetcher
	}
	if c.WebScrapers != nil {
		if fetcher, ok := c.WebScrapers[src.SourceType]; ok {
			return fetcher
		}
	}
	slog.Warn("unknown source type, falling back to RSS fetcher",
		slog.String("source_type", src.SourceType),
		slog.String("source", src.Name))
	return c.FeedFetcher
}
