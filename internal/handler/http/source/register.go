package source

import (
	"net/http"

	srcUC "smart-news/internal/usecase/source"
)

// Register registers the source listing route with the given mux.
// Source tables are static configuration, so the surface is read-only.
func Register(mux *http.ServeMux, svc *srcUC.Service) {
	mux.Handle("GET /v1/news/sources", ListHandler{svc})
}
