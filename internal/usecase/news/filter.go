package news

import (
	"strings"

	"smart-news/internal/domain/entity"
)

// Matches reports whether the query appears as a case-insensitive substring
// of the article's title or description. An empty query always matches,
// which is how "latest news" mode works.
func Matches(a entity.Article, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q)
}

// MatchesAnyToken reports whether any of the tokens appears in the article's
// title or description, case-insensitively. Used by the aggregator's second
// relaxation tier when the verbatim query matched nothing.
func MatchesAnyToken(a entity.Article, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	title := strings.ToLower(a.Title)
	desc := strings.ToLower(a.Description)
	for _, tok := range tokens {
		if strings.Contains(title, tok) || strings.Contains(desc, tok) {
			return true
		}
	}
	return false
}
