// Package text provides utilities for text processing shared by the
// aggregation and speech pipelines: rune counting, tokenizing, and
// display truncation.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This correctly handles multi-byte characters including Vietnamese diacritics
// and CJK by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("tin tức")   // returns 7
//	CountRunes("")          // returns 0
func CountRunes(s string) int {
	return len([]rune(s))
}

// Tokenize splits a query into lower-cased whitespace-separated tokens.
// Empty tokens are dropped. Used by the keyword-OR relaxation tier.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Truncate shortens s to at most max runes, appending "..." when anything
// was cut. Used for display descriptions.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
