package worker

import (
	"time"

	"smart-news/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics exposes Prometheus metrics for the crawl worker. It embeds
// the shared ConfigMetrics for configuration fallback tracking and adds
// crawl-run metrics.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CrawlRunsTotal counts crawl runs by status (success, failure).
	CrawlRunsTotal *prometheus.CounterVec

	// CrawlDurationSeconds measures full crawl run duration.
	CrawlDurationSeconds prometheus.Histogram

	// CrawlSourcesProcessedTotal counts sources processed across runs.
	CrawlSourcesProcessedTotal prometheus.Counter

	// CrawlLastSuccessTimestamp is the Unix time of the last successful run.
	CrawlLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metrics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),
		CrawlRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_crawl_runs_total",
			Help: "Total number of crawl runs by status",
		}, []string{"status"}),
		CrawlDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_crawl_duration_seconds",
			Help:    "Duration of full crawl runs",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),
		CrawlSourcesProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_crawl_sources_processed_total",
			Help: "Total number of sources processed by crawl runs",
		}),
		CrawlLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_crawl_last_success_timestamp",
			Help: "Unix timestamp of the last successful crawl run",
		}),
	}
}

// RecordRun records one crawl run's outcome.
func (m *WorkerMetrics) RecordRun(success bool, duration time.Duration, sources int) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.CrawlRunsTotal.WithLabelValues(status).Inc()
	m.CrawlDurationSeconds.Observe(duration.Seconds())
	m.CrawlSourcesProcessedTotal.Add(float64(sources))
	if success {
		m.CrawlLastSuccessTimestamp.SetToCurrentTime()
	}
}
