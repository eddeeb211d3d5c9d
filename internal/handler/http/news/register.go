package news

import (
	"net/http"

	newsUC "smart-news/internal/usecase/news"
)

// Register registers the news search route with the given mux.
func Register(mux *http.ServeMux, svc *newsUC.Service) {
	mux.Handle("POST /v1/news/search", SearchHandler{svc})
}
