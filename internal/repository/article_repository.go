// Package repository defines the persistence interfaces the use cases
// depend on. Concrete implementations live under infra/adapter/persistence.
package repository

import (
	"context"

	"smart-news/internal/domain/entity"
)

// ArticleRepository is the store the background crawler writes normalized
// articles into. The live search path never reads it; it exists so the
// history and listing endpoints can serve content without refetching feeds.
type ArticleRepository interface {
	// Upsert inserts an article or refreshes an existing row with the same id.
	Upsert(ctx context.Context, article *entity.Article) error
	// ExistsByIDBatch はバッチでID存在チェックを行い、N+1問題を解消する
	ExistsByIDBatch(ctx context.Context, ids []string) (map[string]bool, error)
	// ListRecent returns crawled articles for a language ordered by
	// published time descending. An empty language returns all languages.
	ListRecent(ctx context.Context, language string, offset, limit int) ([]*entity.Article, error)
	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)
}
