package history

import (
	"log/slog"
	"net/http"

	"smart-news/internal/common/pagination"
	"smart-news/internal/handler/http/respond"
	"smart-news/internal/observability/logging"
	histUC "smart-news/internal/usecase/history"
)

// ListHandler serves the paginated search history.
type ListHandler struct {
	Svc           *histUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 検索履歴一覧
// @Summary      検索履歴一覧（ページネーション対応）
// @Description  保存された検索履歴を新しい順に返します
// @Tags         history
// @Produce      json
// @Param        page   query    int  false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "Server error"
// @Router       /v1/history [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.Any("error", err))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	records, total, err := h.Svc.List(ctx, offset, params.Limit)
	if err != nil {
		logger.Error("failed to list search history", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// 一覧では保存済み記事の本体を省き、件数だけを返す
	dtos := make([]DTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record, false))
	}

	metadata := pagination.Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.CalculateTotalPages(total, params.Limit),
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, metadata))
}
