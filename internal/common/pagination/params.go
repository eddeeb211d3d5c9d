package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params are the pagination inputs taken from a request's query string.
type Params struct {
	Page  int // 1-based
	Limit int
}

// ParseQueryParams reads page and limit from the query string. Missing
// parameters take the configured defaults; present but invalid ones are an
// error rather than silently clamped, so clients learn about bad requests.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
