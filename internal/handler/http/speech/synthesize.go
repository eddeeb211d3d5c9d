// Package speech provides the HTTP handlers for text-to-speech, article
// read-aloud, and speech-to-text endpoints.
package speech

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"smart-news/internal/handler/http/respond"
	speechUC "smart-news/internal/usecase/speech"
)

// SynthesizeRequest is the JSON body of a synthesis call.
type SynthesizeRequest struct {
	Text     string `json:"text" example:"Xin chào, đây là bản tin hôm nay"`
	Language string `json:"language" example:"vi"`
}

// ReadArticleRequest is the JSON body of a read-aloud call.
type ReadArticleRequest struct {
	URL      string `json:"url" example:"https://vnexpress.net/..."`
	Language string `json:"language" example:"vi"`
}

// SynthesizeHandler renders text to audio through the engine chain.
type SynthesizeHandler struct{ Svc *speechUC.Service }

// ServeHTTP 音声合成
// @Summary      音声合成
// @Description  テキストを音声に変換します
// @Tags         speech
// @Accept       json
// @Produce      audio/mpeg
// @Param        request body SynthesizeRequest true "合成するテキスト"
// @Success      200 {file} binary
// @Failure      400 {string} string "Bad request"
// @Failure      502 {string} string "All engines failed"
// @Router       /v1/speech/synthesize [post]
func (h SynthesizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid request body: %w", err))
		return
	}

	audio, err := h.Svc.Synthesize(r.Context(), req.Text, req.Language)
	if err != nil {
		writeSpeechError(w, err)
		return
	}

	writeAudio(w, audio)
}

// ReadArticleHandler fetches an article's readable text and synthesizes it.
type ReadArticleHandler struct{ Svc *speechUC.Service }

// ServeHTTP 記事読み上げ
// @Summary      記事読み上げ
// @Description  記事本文を取得して音声に変換します
// @Tags         speech
// @Accept       json
// @Produce      audio/mpeg
// @Param        request body ReadArticleRequest true "記事URL"
// @Success      200 {file} binary
// @Failure      400 {string} string "Bad request"
// @Failure      502 {string} string "Fetch or synthesis failed"
// @Router       /v1/speech/read-article [post]
func (h ReadArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ReadArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid request body: %w", err))
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("url must be an absolute http(s) URL"))
		return
	}

	audio, err := h.Svc.ReadArticle(r.Context(), req.URL, req.Language)
	if err != nil {
		writeSpeechError(w, err)
		return
	}

	writeAudio(w, audio)
}

// writeAudio streams synthesized audio back with its engine recorded in a
// response header, so clients can tell which fallback produced the result.
func writeAudio(w http.ResponseWriter, audio *speechUC.Audio) {
	w.Header().Set("Content-Type", audio.MIMEType)
	w.Header().Set("X-Speech-Engine", audio.Engine)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio.Data)
}

func writeSpeechError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, speechUC.ErrEmptyText), errors.Is(err, speechUC.ErrTextTooLong):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, speechUC.ErrAllEnginesFailed):
		respond.SafeError(w, http.StatusBadGateway, err)
	default:
		respond.SafeError(w, http.StatusBadGateway, err)
	}
}
