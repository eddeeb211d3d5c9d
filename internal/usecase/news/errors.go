// Package news provides the multi-source news aggregation use case.
// It fans fetch+normalize+filter pipelines out across the configured
// sources for a language, merges the results, deduplicates by title,
// sorts by recency, and truncates to the requested limit.
package news

import "errors"

// Sentinel errors for news aggregation operations.
var (
	// ErrNoSourcesReachable indicates that every configured source for the
	// requested language failed to respond. A single failing source is
	// tolerated and contributes zero articles; this error surfaces only
	// when no source could be fetched at all.
	ErrNoSourcesReachable = errors.New("no news sources were reachable")

	// ErrNoSourcesConfigured indicates that the source table resolved to an
	// empty list, which means the process configuration is broken.
	ErrNoSourcesConfigured = errors.New("no news sources configured")
)
