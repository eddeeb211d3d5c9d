// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (searches, relaxation tiers, source errors)
//   - Speech synthesis and transcription metrics
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "smart-news/internal/observability/metrics"
//
//	func searchNews(language string) {
//	    start := time.Now()
//	    // ... aggregate ...
//	    metrics.RecordSearch(language, "verbatim", time.Since(start))
//	}
package metrics
