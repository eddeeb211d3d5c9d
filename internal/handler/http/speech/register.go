package speech

import (
	"net/http"

	speechUC "smart-news/internal/usecase/speech"
)

// Register registers the speech routes with the given mux.
func Register(mux *http.ServeMux, svc *speechUC.Service) {
	mux.Handle("POST /v1/speech/synthesize", SynthesizeHandler{svc})
	mux.Handle("POST /v1/speech/read-article", ReadArticleHandler{svc})
	mux.Handle("POST /v1/speech/transcribe", TranscribeHandler{svc})
}
