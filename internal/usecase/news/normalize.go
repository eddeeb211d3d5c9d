package news

import (
	"html"
	"regexp"
	"strings"
	"time"

	"smart-news/internal/domain/entity"
)

// Regex-level HTML handling is deliberate: feeds embed small, mostly
// well-formed fragments, and a full parser buys nothing here. Malformed
// markup may leave residue, which is an accepted limitation.
var (
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	imgSrcPattern  = regexp.MustCompile(`<img[^>]+src="([^"]+)"`)
)

// StripHTML removes markup tags from a feed text block and collapses the
// surrounding whitespace. HTML entities are unescaped first so that
// "&amp;lt;" style double-escaping in feeds does not leak into output.
func StripHTML(s string) string {
	s = html.UnescapeString(s)
	s = htmlTagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// ExtractImage returns the src of the first <img> tag found in any of the
// given HTML blocks, checked in order. Falls back to the fixed placeholder
// when none of the blocks carry an image.
func ExtractImage(blocks ...string) string {
	for _, block := range blocks {
		if m := imgSrcPattern.FindStringSubmatch(block); m != nil {
			return m[1]
		}
	}
	return entity.PlaceholderImageURL
}

// Normalize maps a raw feed entry to a canonical Article. The boolean is
// false when the entry is rejected as noise (title below the minimum
// length threshold).
//
// A dateless entry gets `now` as its published time, treating it as
// freshest. Two normalizations of the same dateless entry at different
// times therefore yield different timestamps.
func Normalize(item FeedItem, src entity.SourceConfig, now time.Time) (entity.Article, bool) {
	title := strings.TrimSpace(StripHTML(item.Title))
	if !entity.ValidTitle(title) {
		return entity.Article{}, false
	}

	published := now
	if item.Published != nil {
		published = *item.Published
	}

	return entity.Article{
		ID:          entity.ArticleID(title, item.Link),
		Title:       title,
		Description: strings.TrimSpace(StripHTML(item.Description)),
		Link:        item.Link,
		Published:   published,
		Source:      src.Name,
		Language:    src.Language,
		Image:       ExtractImage(item.Content, item.Description),
	}, true
}
