package source

import (
	"net/http"

	"smart-news/internal/handler/http/respond"
	srcUC "smart-news/internal/usecase/source"
)

// ListHandler serves the configured source tables.
type ListHandler struct{ Svc *srcUC.Service }

// ServeHTTP ニュースソース一覧
// @Summary      ニュースソース一覧
// @Description  言語ごとに設定済みのニュースソースを返します
// @Tags         sources
// @Produce      json
// @Param        language query string false "言語タグでフィルタ (vi, en, zh)"
// @Success      200 {object} ListResponse
// @Router       /v1/news/sources [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if language := r.URL.Query().Get("language"); language != "" {
		srcs := h.Svc.ListByLanguage(language)
		respond.JSON(w, http.StatusOK, ListResponse{
			Languages: []string{language},
			Sources:   map[string][]DTO{language: toDTOs(srcs)},
		})
		return
	}

	all := h.Svc.ListAll()
	sources := make(map[string][]DTO, len(all))
	for lang, srcs := range all {
		sources[lang] = toDTOs(srcs)
	}
	respond.JSON(w, http.StatusOK, ListResponse{
		Languages: h.Svc.Languages(),
		Sources:   sources,
	})
}
