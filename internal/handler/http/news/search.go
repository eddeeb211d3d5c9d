package news

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"smart-news/internal/handler/http/respond"
	newsUC "smart-news/internal/usecase/news"
)

// SearchHandler runs one aggregation call across the configured sources.
type SearchHandler struct{ Svc *newsUC.Service }

// ServeHTTP ニュース検索
// @Summary      ニュース検索
// @Description  設定済みソースを横断してニュースを検索します
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        request body SearchRequest true "検索条件"
// @Success      200 {object} SearchResponse
// @Failure      400 {string} string "Bad request"
// @Failure      502 {string} string "All sources failed"
// @Router       /v1/news/search [post]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid request body: %w", err))
		return
	}

	if utf8.RuneCountInString(req.Query) > maxQueryLength {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("query must be at most %d characters", maxQueryLength))
		return
	}
	if req.Limit < 0 {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("limit must not be negative"))
		return
	}

	result, err := h.Svc.Search(r.Context(), newsUC.SearchParams{
		Query:    req.Query,
		Language: req.Language,
		Limit:    req.Limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, newsUC.ErrNoSourcesReachable):
			respond.SafeError(w, http.StatusBadGateway, err)
		case errors.Is(err, newsUC.ErrNoSourcesConfigured):
			respond.SafeError(w, http.StatusServiceUnavailable, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toSearchResponse(result))
}
