package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smart-news/internal/domain/entity"
	"smart-news/internal/infra/worker"
	"smart-news/internal/usecase/news"
)

/* ───────── モック実装 ───────── */

type crawlStubFetcher struct {
	mu    sync.Mutex
	items map[string][]news.FeedItem
	errs  map[string]error
	calls map[string]int
}

func (f *crawlStubFetcher) Fetch(_ context.Context, url string) ([]news.FeedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.items[url], nil
}

type memArticleRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.Article
	upserts  int
	countErr error
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{byID: map[string]*entity.Article{}}
}

func (r *memArticleRepo) Upsert(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[article.ID] = article
	r.upserts++
	return nil
}

func (r *memArticleRepo) ExistsByIDBatch(_ context.Context, ids []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		_, ok := r.byID[id]
		out[id] = ok
	}
	return out, nil
}

func (r *memArticleRepo) ListRecent(_ context.Context, language string, offset, limit int) ([]*entity.Article, error) {
	return nil, nil
}

func (r *memArticleRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), r.countErr
}

/* ───────── ヘルパ ───────── */

func feedItem(title string, published time.Time) news.FeedItem {
	return news.FeedItem{
		Title:     title,
		Link:      "https://news.example/" + title,
		Published: &published,
	}
}

func crawlSources() map[string][]entity.SourceConfig {
	return map[string][]entity.SourceConfig{
		"vi": {
			{Name: "VnExpress", FeedURL: "https://vnexpress.net/rss", Language: "vi"},
			{Name: "Tuổi Trẻ", FeedURL: "https://tuoitre.vn/rss", Language: "vi"},
		},
		"en": {
			{Name: "BBC", FeedURL: "https://bbc.example/rss", Language: "en"},
		},
	}
}

/* ───────── テスト ───────── */

func TestCrawlerRun_StoresAllSources(t *testing.T) {
	now := time.Now()
	fetcher := &crawlStubFetcher{items: map[string][]news.FeedItem{
		"https://vnexpress.net/rss": {feedItem("Giá vàng hôm nay tăng", now)},
		"https://tuoitre.vn/rss":    {feedItem("Bóng đá Việt Nam thắng lớn", now)},
		"https://bbc.example/rss":   {feedItem("Markets rally on rate cut", now)},
	}}
	repo := newMemArticleRepo()

	crawler := worker.NewCrawler(crawlSources(), fetcher, nil, repo, 2)

	if err := crawler.Run(context.Background()); err != nil {
		t.Fatalf("Run err=%v", err)
	}

	if len(repo.byID) != 3 {
		t.Errorf("stored %d articles, want 3", len(repo.byID))
	}
}

func TestCrawlerRun_ToleratesSourceFailure(t *testing.T) {
	now := time.Now()
	fetcher := &crawlStubFetcher{
		items: map[string][]news.FeedItem{
			"https://tuoitre.vn/rss":  {feedItem("Bóng đá Việt Nam thắng lớn", now)},
			"https://bbc.example/rss": {feedItem("Markets rally on rate cut", now)},
		},
		// リトライ対象外のエラーで即座に諦めさせる
		errs: map[string]error{
			"https://vnexpress.net/rss": errors.New("feed gone"),
		},
	}
	repo := newMemArticleRepo()

	crawler := worker.NewCrawler(crawlSources(), fetcher, nil, repo, 2)

	if err := crawler.Run(context.Background()); err != nil {
		t.Fatalf("Run must tolerate single source failure: %v", err)
	}
	if len(repo.byID) != 2 {
		t.Errorf("stored %d articles, want 2", len(repo.byID))
	}
}

func TestCrawlerRun_UpsertRefreshesExisting(t *testing.T) {
	now := time.Now()
	fetcher := &crawlStubFetcher{items: map[string][]news.FeedItem{
		"https://vnexpress.net/rss": {feedItem("Giá vàng hôm nay tăng", now)},
		"https://tuoitre.vn/rss":    {},
		"https://bbc.example/rss":   {},
	}}
	repo := newMemArticleRepo()

	crawler := worker.NewCrawler(crawlSources(), fetcher, nil, repo, 2)

	if err := crawler.Run(context.Background()); err != nil {
		t.Fatalf("first Run err=%v", err)
	}
	if err := crawler.Run(context.Background()); err != nil {
		t.Fatalf("second Run err=%v", err)
	}

	// 2回のクロールでも同一IDは1行のまま
	if len(repo.byID) != 1 {
		t.Errorf("stored %d articles, want 1", len(repo.byID))
	}
	if repo.upserts != 2 {
		t.Errorf("upserts = %d, want 2 (refresh on second run)", repo.upserts)
	}
}

func TestCrawlerRun_SkipsShortTitles(t *testing.T) {
	now := time.Now()
	fetcher := &crawlStubFetcher{items: map[string][]news.FeedItem{
		"https://vnexpress.net/rss": {
			feedItem("Tin", now), // 5ルーン未満は正規化で弾かれる
			feedItem("Giá vàng hôm nay tăng", now),
		},
		"https://tuoitre.vn/rss":  {},
		"https://bbc.example/rss": {},
	}}
	repo := newMemArticleRepo()

	crawler := worker.NewCrawler(crawlSources(), fetcher, nil, repo, 2)

	if err := crawler.Run(context.Background()); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if len(repo.byID) != 1 {
		t.Errorf("stored %d articles, want 1", len(repo.byID))
	}
}

func TestCrawlerRun_NoSources(t *testing.T) {
	crawler := worker.NewCrawler(map[string][]entity.SourceConfig{}, &crawlStubFetcher{}, nil, newMemArticleRepo(), 2)

	if err := crawler.Run(context.Background()); err == nil {
		t.Fatal("Run with no sources must error")
	}
}
