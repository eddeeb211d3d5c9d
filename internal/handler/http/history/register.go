package history

import (
	"log/slog"
	"net/http"

	"smart-news/internal/common/pagination"
	"smart-news/internal/handler/http/auth"
	histUC "smart-news/internal/usecase/history"
)

// Register registers the history routes with the given mux. Reads are
// public; the purge requires an admin token.
func Register(mux *http.ServeMux, svc *histUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /v1/history", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /v1/history/{id}", GetHandler{svc})
	mux.Handle("DELETE /v1/history", auth.RequireAdmin(PurgeHandler{svc}))
}
