package db

import "database/sql"

// MigrateUp creates the schema. Statements are written in the dialect
// subset both PostgreSQL and SQLite accept, so the same migration runs
// against either backend.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT,
    link        TEXT,
    published   TIMESTAMP NOT NULL,
    source      TEXT NOT NULL,
    language    TEXT NOT NULL,
    image       TEXT
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS search_history (
    id            TEXT PRIMARY KEY,
    query         TEXT NOT NULL,
    language      TEXT NOT NULL,
    article_count INTEGER NOT NULL,
    articles      TEXT,
    created_at    TIMESTAMP NOT NULL
)`); err != nil {
		return err
	}

	// パフォーマンス最適化: インデックス追加
	indexes := []string{
		// ORDER BY published DESC で使用(記事一覧の全クエリで使用)
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published DESC)`,
		// 言語別絞り込み用
		`CREATE INDEX IF NOT EXISTS idx_articles_language ON articles(language)`,
		// 履歴一覧のソート用
		`CREATE INDEX IF NOT EXISTS idx_search_history_created_at ON search_history(created_at DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
