package news

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"smart-news/internal/domain/entity"
	"smart-news/internal/observability/metrics"
	"smart-news/internal/utils/text"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLimit is the number of articles returned when the caller does
	// not supply a limit.
	DefaultLimit = 10

	// perSourceCap bounds how many normalized entries one source may
	// contribute to the merge, so a single very chatty feed cannot crowd
	// out the others.
	perSourceCap = 10

	// fallbackPerSource is how many latest articles each source contributes
	// in the third relaxation tier, when no filter matched anything.
	fallbackPerSource = 2
)

// scraperConfigKey is the context key under which HTML-list sources carry
// their selector configuration down to the scraper.
type scraperConfigKey struct{}

// WithScraperConfig attaches a scraper configuration to the context.
func WithScraperConfig(ctx context.Context, cfg *entity.ScraperConfig) context.Context {
	return context.WithValue(ctx, scraperConfigKey{}, cfg)
}

// ScraperConfigFromContext extracts the scraper configuration attached by
// WithScraperConfig. Returns nil when none is present.
func ScraperConfigFromContext(ctx context.Context) *entity.ScraperConfig {
	cfg, _ := ctx.Value(scraperConfigKey{}).(*entity.ScraperConfig)
	return cfg
}

// Recorder persists search results to a history store. Recording is
// fire-and-forget: it runs after the response is composed and its failure
// never affects the search call.
type Recorder interface {
	RecordSearch(ctx context.Context, result *entity.SearchResult)
}

// SearchParams are the inputs of one aggregation call.
type SearchParams struct {
	Query    string
	Language string
	Limit    int
}

// Service aggregates news across the configured sources of a language.
type Service struct {
	Sources         map[string][]entity.SourceConfig
	DefaultLanguage string
	FeedFetcher     FeedFetcher
	WebScrapers     map[string]FeedFetcher // keyed by SourceType for non-RSS sources
	History         Recorder               // optional, may be nil
}

// NewService creates a news aggregation Service.
//
// Parameters:
//   - sources: per-language source tables, immutable for the process lifetime
//   - defaultLanguage: language whose table serves unknown language tags
//   - feedFetcher: fetcher for RSS/Atom sources
//   - webScrapers: fetchers for non-RSS source types (can be nil)
//   - history: search history recorder (can be nil to disable)
func NewService(
	sources map[string][]entity.SourceConfig,
	defaultLanguage string,
	feedFetcher FeedFetcher,
	webScrapers map[string]FeedFetcher,
	history Recorder,
) Service {
	return Service{
		Sources:         sources,
		DefaultLanguage: defaultLanguage,
		FeedFetcher:     feedFetcher,
		WebScrapers:     webScrapers,
		History:         history,
	}
}

// sourceResult is the outcome of one source's fetch+normalize pipeline.
// Articles preserve feed order and are capped at perSourceCap.
type sourceResult struct {
	source   entity.SourceConfig
	articles []entity.Article
	failed   bool
}

// Search fans out one fetch+normalize+filter pipeline per configured source
// of the requested language, merges the results, deduplicates by exact
// title (first occurrence wins), sorts by published descending, and
// truncates to the limit.
//
// Individual source failures contribute zero articles and never fail the
// call; ErrNoSourcesReachable is returned only when every source failed.
// An empty result set is not an error.
func (s *Service) Search(ctx context.Context, params SearchParams) (*entity.SearchResult, error) {
	start := time.Now()

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	language, srcs := s.resolveSources(params.Language)
	if len(srcs) == 0 {
		return nil, ErrNoSourcesConfigured
	}

	results := s.fetchAll(ctx, srcs)

	reachable := 0
	for _, res := range results {
		if !res.failed {
			reachable++
		}
	}
	if reachable == 0 {
		slog.Error("all news sources failed",
			slog.String("language", language),
			slog.Int("sources", len(srcs)))
		return nil, ErrNoSourcesReachable
	}

	articles, tier := s.applyRelaxation(results, params.Query)
	articles = dedupeByTitle(articles)
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
	if len(articles) > limit {
		articles = articles[:limit]
	}

	result := &entity.SearchResult{
		Articles:  articles,
		Total:     len(articles),
		Query:     params.Query,
		Language:  language,
		Timestamp: time.Now(),
	}

	metrics.RecordSearch(language, tier, time.Since(start))
	slog.Info("news search completed",
		slog.String("query", params.Query),
		slog.String("language", language),
		slog.String("relaxation_tier", tier),
		slog.Int("total", result.Total),
		slog.Int("sources_failed", len(srcs)-reachable),
		slog.Duration("duration", time.Since(start)))

	if s.History != nil {
		s.History.RecordSearch(context.WithoutCancel(ctx), result)
	}

	return result, nil
}

// resolveSources maps a language tag to its source table. Unknown tags are
// silently remapped to the default language's table.
func (s *Service) resolveSources(language string) (string, []entity.SourceConfig) {
	if srcs, ok := s.Sources[language]; ok {
		return language, srcs
	}
	return s.DefaultLanguage, s.Sources[s.DefaultLanguage]
}

// fetchAll dispatches one fetch per source concurrently and waits for all
// of them. The returned slice preserves source table order, so downstream
// dedupe and tie-breaking stay deterministic for identical inputs.
func (s *Service) fetchAll(ctx context.Context, srcs []entity.SourceConfig) []sourceResult {
	results := make([]sourceResult, len(srcs))

	// Per-source failures are swallowed, so no goroutine returns an error;
	// the group is used purely as a completion barrier.
	var eg errgroup.Group
	for i, src := range srcs {
		i, src := i, src
		eg.Go(func() error {
			results[i] = s.fetchSource(ctx, src)
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

// fetchSource runs the fetch+normalize pipeline for a single source.
// Failures are logged and reported as failed with zero articles.
func (s *Service) fetchSource(ctx context.Context, src entity.SourceConfig) sourceResult {
	if src.Scraper != nil {
		ctx = WithScraperConfig(ctx, src.Scraper)
	}

	items, err := s.selectFetcher(src).Fetch(ctx, src.FeedURL)
	if err != nil {
		slog.Warn("failed to fetch source",
			slog.String("source", src.Name),
			slog.String("feed_url", src.FeedURL),
			slog.Any("error", err))
		metrics.RecordSourceError(src.Name, "fetch_failed")
		return sourceResult{source: src, failed: true}
	}

	now := time.Now()
	articles := make([]entity.Article, 0, len(items))
	for _, item := range items {
		article, ok := Normalize(item, src, now)
		if !ok {
			continue
		}
		articles = append(articles, article)
		if len(articles) >= perSourceCap {
			break
		}
	}

	metrics.RecordArticlesFetched(src.Name, len(articles))
	return sourceResult{source: src, articles: articles}
}

// selectFetcher chooses the fetcher for a source based on its type.
// Unknown types fall back to the RSS fetcher.
func (s *Service) selectFetcher(src entity.SourceConfig) FeedFetcher {
	// SourceTypeが空の場合はRSSとみなす（後方互換性）
	if src.SourceType == "" || src.SourceType == "RSS" {
		return s.FeedFetcher
	}

	if s.WebScrapers != nil {
		if fetcher, ok := s.WebScrapers[src.SourceType]; ok {
			return fetcher
		}
	}

	slog.Warn("unknown source type, falling back to RSS fetcher",
		slog.String("source_type", src.SourceType),
		slog.String("source", src.Name))
	return s.FeedFetcher
}

// applyRelaxation runs the three-tier query relaxation ladder over the
// per-source results and returns the merged article list in source order,
// along with the tier that produced it:
//
//	verbatim: case-insensitive substring match of the whole query
//	tokens:   any whitespace-split token of the query matches
//	latest:   up to fallbackPerSource most recent articles per source,
//	          unfiltered
//
// Each tier is tried only when the previous one yielded nothing, so the
// user is never shown an empty page merely because the literal query does
// not appear verbatim anywhere.
func (s *Service) applyRelaxation(results []sourceResult, query string) ([]entity.Article, string) {
	var merged []entity.Article
	for _, res := range results {
		for _, a := range res.articles {
			if Matches(a, query) {
				merged = append(merged, a)
			}
		}
	}
	if len(merged) > 0 || query == "" {
		return merged, "verbatim"
	}

	tokens := text.Tokenize(query)
	for _, res := range results {
		for _, a := range res.articles {
			if MatchesAnyToken(a, tokens) {
				merged = append(merged, a)
			}
		}
	}
	if len(merged) > 0 {
		return merged, "tokens"
	}

	for _, res := range results {
		merged = append(merged, latestN(res.articles, fallbackPerSource)...)
	}
	return merged, "latest"
}

// latestN returns the n most recent articles of one source, most recent
// first. The input slice is not mutated.
func latestN(articles []entity.Article, n int) []entity.Article {
	sorted := make([]entity.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// dedupeByTitle removes exact-title duplicates across sources, keeping the
// first occurrence in merge order. Near-duplicate titles with punctuation
// differences are not merged.
func dedupeByTitle(articles []entity.Article) []entity.Article {
	seen := make(map[string]struct{}, len(articles))
	out := articles[:0:0]
	for _, a := range articles {
		if _, dup := seen[a.Title]; dup {
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out
}
