package history

import (
	"log/slog"
	"net/http"

	"smart-news/internal/handler/http/auth"
	"smart-news/internal/handler/http/respond"
	histUC "smart-news/internal/usecase/history"
)

// PurgeHandler deletes the whole search history. It is the only
// destructive endpoint of the API and sits behind the admin JWT.
type PurgeHandler struct{ Svc *histUC.Service }

// ServeHTTP 検索履歴全削除
// @Summary      検索履歴全削除
// @Description  保存された検索履歴をすべて削除します（管理者のみ）
// @Tags         history
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} PurgeResponse
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden"
// @Failure      500 {string} string "Server error"
// @Router       /v1/history [delete]
func (h PurgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.Purge(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("search history purged",
		slog.String("admin", auth.UserFromContext(r.Context())),
		slog.Int64("deleted", deleted))

	respond.JSON(w, http.StatusOK, PurgeResponse{Deleted: deleted})
}
