package speech

import (
	"errors"
	"fmt"
	"net/http"

	"smart-news/internal/handler/http/respond"
	speechUC "smart-news/internal/usecase/speech"
)

// maxUploadSize caps uploaded audio files at 25MB, matching the limit of
// the transcription backend.
const maxUploadSize = 25 << 20

// TranscribeResponse is the JSON body of a transcription result.
type TranscribeResponse struct {
	Text string `json:"text" example:"giá vàng hôm nay"`
}

// TranscribeHandler converts uploaded audio to text.
type TranscribeHandler struct{ Svc *speechUC.Service }

// ServeHTTP 音声文字起こし
// @Summary      音声文字起こし
// @Description  アップロードされた音声をテキストに変換します
// @Tags         speech
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio formData file true "音声ファイル"
// @Success      200 {object} TranscribeResponse
// @Failure      400 {string} string "Bad request"
// @Failure      501 {string} string "Transcription not configured"
// @Failure      502 {string} string "Transcription failed"
// @Router       /v1/speech/transcribe [post]
func (h TranscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("audio file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	transcript, err := h.Svc.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, speechUC.ErrNoTranscriber) {
			respond.SafeError(w, http.StatusNotImplemented, err)
			return
		}
		respond.SafeError(w, http.StatusBadGateway, err)
		return
	}

	respond.JSON(w, http.StatusOK, TranscribeResponse{Text: transcript})
}
