package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smart-news/internal/infra/fetcher"
)

/* ───────── ヘルパ ───────── */

const sampleArticleHTML = `<!DOCTYPE html>
<html>
<head><title>Giá vàng hôm nay</title></head>
<body>
<nav>Trang chủ | Kinh doanh | Thể thao</nav>
<article>
<h1>Giá vàng hôm nay tăng mạnh</h1>
<p>Giá vàng miếng trong nước sáng nay tiếp tục tăng mạnh theo đà đi lên
của thị trường thế giới, vượt mốc kỷ lục được thiết lập tuần trước.</p>
<p>Các chuyên gia nhận định xu hướng tăng có thể còn kéo dài trong bối
cảnh đồng tiền của nhiều nền kinh tế lớn suy yếu và nhu cầu trú ẩn an
toàn của nhà đầu tư gia tăng rõ rệt so với cùng kỳ năm ngoái.</p>
</article>
<footer>Bản quyền thuộc về tòa soạn</footer>
</body>
</html>`

func testConfig() fetcher.ContentFetchConfig {
	cfg := fetcher.DefaultConfig()
	// httptestのサーバはループバックで動くため無効化する
	cfg.DenyPrivateIPs = false
	return cfg
}

/* ───────── テスト ───────── */

func TestFetchContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "SmartNewsReader") {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sampleArticleHTML))
	}))
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(testConfig())

	content, err := f.FetchContent(context.Background(), server.URL+"/gia-vang")
	if err != nil {
		t.Fatalf("FetchContent err=%v", err)
	}

	if !strings.Contains(content, "Giá vàng miếng trong nước") {
		t.Errorf("extracted content missing article body: %q", content)
	}
	if strings.Contains(content, "<p>") {
		t.Errorf("extracted content still contains HTML: %q", content)
	}
}

func TestFetchContent_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(testConfig())

	if _, err := f.FetchContent(context.Background(), server.URL); err == nil {
		t.Fatal("FetchContent must fail on 404")
	}
}

func TestFetchContent_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>" + strings.Repeat("x", 4096) + "</body></html>"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 2048

	f := fetcher.NewReadabilityFetcher(cfg)

	_, err := f.FetchContent(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrBodyTooLarge) {
		t.Fatalf("err=%v, want ErrBodyTooLarge", err)
	}
}

func TestFetchContent_RedirectLimit(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 無限リダイレクト
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxRedirects = 2

	f := fetcher.NewReadabilityFetcher(cfg)

	_, err := f.FetchContent(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrTooManyRedirects) {
		t.Fatalf("err=%v, want ErrTooManyRedirects", err)
	}
}

func TestFetchContent_RejectsNonHTTPScheme(t *testing.T) {
	f := fetcher.NewReadabilityFetcher(testConfig())

	_, err := f.FetchContent(context.Background(), "ftp://example.com/article")
	if !errors.Is(err, fetcher.ErrInvalidURL) {
		t.Fatalf("err=%v, want ErrInvalidURL", err)
	}
}

func TestFetchContent_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(sampleArticleHTML))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond

	f := fetcher.NewReadabilityFetcher(cfg)

	if _, err := f.FetchContent(context.Background(), server.URL); err == nil {
		t.Fatal("FetchContent must fail on timeout")
	}
}
