package source_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smart-news/internal/domain/entity"
	"smart-news/internal/handler/http/source"
	srcUC "smart-news/internal/usecase/source"
)

func testService() *srcUC.Service {
	return srcUC.NewService(map[string][]entity.SourceConfig{
		"vi": {
			{Name: "VnExpress", FeedURL: "https://vnexpress.net/rss/tin-moi-nhat.rss", Language: "vi"},
			{Name: "Tuổi Trẻ", FeedURL: "https://tuoitre.vn/rss/tin-moi-nhat.rss", Language: "vi"},
		},
		"en": {
			{Name: "BBC News", FeedURL: "https://feeds.bbci.co.uk/news/rss.xml", Language: "en"},
		},
	})
}

func TestListHandler_AllSources(t *testing.T) {
	handler := source.ListHandler{Svc: testService()}

	req := httptest.NewRequest(http.MethodGet, "/v1/news/sources", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp source.ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// 言語タグはソート順
	want := []string{"en", "vi"}
	if len(resp.Languages) != len(want) {
		t.Fatalf("languages = %v, want %v", resp.Languages, want)
	}
	for i, lang := range want {
		if resp.Languages[i] != lang {
			t.Errorf("languages[%d] = %q, want %q", i, resp.Languages[i], lang)
		}
	}

	if len(resp.Sources["vi"]) != 2 {
		t.Errorf("vi sources = %d, want 2", len(resp.Sources["vi"]))
	}
	if got := resp.Sources["vi"][0].SourceType; got != "RSS" {
		t.Errorf("empty source type should default to RSS, got %q", got)
	}
}

func TestListHandler_FilterByLanguage(t *testing.T) {
	handler := source.ListHandler{Svc: testService()}

	req := httptest.NewRequest(http.MethodGet, "/v1/news/sources?language=en", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp source.ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Sources) != 1 {
		t.Errorf("expected only the requested language, got %v", resp.Languages)
	}
	if len(resp.Sources["en"]) != 1 || resp.Sources["en"][0].Name != "BBC News" {
		t.Errorf("unexpected en sources: %+v", resp.Sources["en"])
	}
}

func TestListHandler_UnknownLanguage(t *testing.T) {
	handler := source.ListHandler{Svc: testService()}

	req := httptest.NewRequest(http.MethodGet, "/v1/news/sources?language=fr", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// 未知の言語はエラーではなく空リスト
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp source.ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sources["fr"]) != 0 {
		t.Errorf("expected empty source list for unknown language, got %+v", resp.Sources["fr"])
	}
}
