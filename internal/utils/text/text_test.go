package text

import (
	"reflect"
	"testing"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"ascii", "hello", 5},
		{"vietnamese", "tin tức", 7},
		{"chinese", "新闻报道", 4},
		{"mixed", "hello世界", 7},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountRunes(tt.in); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "bóng đá Việt Nam", []string{"bóng", "đá", "việt", "nam"}},
		{"extra whitespace", "  climate \t change \n", []string{"climate", "change"}},
		{"empty", "", nil},
		{"only spaces", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays intact", "tin mới", 200, "tin mới"},
		{"exact length stays intact", "abcde", 5, "abcde"},
		{"long is cut with ellipsis", "abcdefgh", 5, "abcde..."},
		{"multibyte cut on rune boundary", "tin tức kinh tế", 7, "tin tức..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
