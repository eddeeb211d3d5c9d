package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance.
var pathPatterns = []*PathPattern{
	// Search history entries are keyed by UUID
	{Pattern: regexp.MustCompile(`^/v1/history/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`), Template: "/v1/history/:id"},
	// Unknown suffixes under /v1/history are still per-entry lookups (404s
	// included); collapse them so bad IDs cannot inflate cardinality
	{Pattern: regexp.MustCompile(`^/v1/history/[^/]+$`), Template: "/v1/history/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /v1/history/<uuid>) to template format
// (e.g., /v1/history/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/v1/history/6f1e...d2")   // "/v1/history/:id"
//	NormalizePath("/v1/news/search")         // "/v1/news/search" (unchanged)
//	NormalizePath("/health")                 // "/health" (unchanged)
//	NormalizePath("/auth/token")             // "/auth/token" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/v1/history/6f1e...d2?format=json")  // "/v1/history/:id"
//	NormalizePath("/v1/history/6f1e...d2/")             // "/v1/history/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /health,
	// /metrics, /auth/token and /v1/news/search pass through unchanged.
	return path
}
