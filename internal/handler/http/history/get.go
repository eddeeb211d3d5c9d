package history

import (
	"errors"
	"net/http"

	"smart-news/internal/domain/entity"
	"smart-news/internal/handler/http/pathutil"
	"smart-news/internal/handler/http/respond"
	histUC "smart-news/internal/usecase/history"
)

// GetHandler serves one history entry including its stored articles.
type GetHandler struct{ Svc *histUC.Service }

// ServeHTTP 検索履歴取得
// @Summary      検索履歴取得
// @Description  検索履歴を1件、保存された記事付きで返します
// @Tags         history
// @Produce      json
// @Param        id path string true "履歴ID (UUID)"
// @Success      200 {object} DTO
// @Failure      400 {string} string "Invalid id"
// @Failure      404 {string} string "Not found"
// @Router       /v1/history/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/v1/history/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	record, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respond.SafeError(w, http.StatusNotFound, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(record, true))
}
