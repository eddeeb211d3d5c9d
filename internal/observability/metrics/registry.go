package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track news aggregation operations
var (
	// SearchesTotal counts aggregation calls by language and the relaxation
	// tier that produced the result (verbatim, tokens, latest)
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_searches_total",
			Help: "Total number of news search operations",
		},
		[]string{"language", "tier"},
	)

	// SearchDuration measures end-to-end aggregation duration
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_search_duration_seconds",
			Help:    "Time taken to aggregate news across sources",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"language"},
	)

	// SourceErrorsTotal counts per-source fetch failures. These failures are
	// swallowed by the aggregator, so this counter is the only place they
	// remain visible.
	SourceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_source_errors_total",
			Help: "Total number of per-source fetch failures",
		},
		[]string{"source", "error_type"},
	)

	// ArticlesFetchedTotal counts normalized articles contributed per source
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_fetched_total",
			Help: "Total number of articles fetched from sources",
		},
		[]string{"source"},
	)

	// ArticlesStoredTotal tracks total number of crawled articles in the database
	ArticlesStoredTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_stored_total",
			Help: "Total number of crawled articles in the database",
		},
	)

	// FeedCrawlDuration measures time to crawl a feed source in the worker
	FeedCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_crawl_duration_seconds",
			Help:    "Time taken to crawl a feed source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// FeedCrawlErrors counts errors during background feed crawling
	FeedCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_crawl_errors_total",
			Help: "Total number of feed crawl errors",
		},
		[]string{"source", "error_type"},
	)

	// ContentFetchAttemptsTotal counts full-article content fetch attempts
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of article content fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ContentFetchDuration measures time to fetch article content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// Speech metrics track synthesis and transcription operations
var (
	// SynthesisAttemptsTotal counts synthesis attempts per engine and status.
	// A single request may increment several engines when the strategy chain
	// falls through.
	SynthesisAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_synthesis_attempts_total",
			Help: "Total number of speech synthesis attempts",
		},
		[]string{"engine", "status"},
	)

	// SynthesisDuration measures synthesis duration per engine
	SynthesisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "speech_synthesis_duration_seconds",
			Help:    "Time taken to synthesize speech",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"engine"},
	)

	// TranscriptionsTotal counts transcription requests by status
	TranscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_transcriptions_total",
			Help: "Total number of speech transcription requests",
		},
		[]string{"status"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// HistoryWritesTotal counts search history writes by status
	HistoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_history_writes_total",
			Help: "Total number of search history write operations",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
