package entity

import "testing"

func TestSourceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		source  SourceConfig
		wantErr bool
	}{
		{
			name:   "valid RSS source",
			source: SourceConfig{Name: "VnExpress", FeedURL: "https://vnexpress.net/rss/tin-moi-nhat.rss", Language: "vi", SourceType: "RSS"},
		},
		{
			name:   "empty type defaults to RSS",
			source: SourceConfig{Name: "BBC News", FeedURL: "https://feeds.bbci.co.uk/news/rss.xml", Language: "en"},
		},
		{
			name: "valid HTML source",
			source: SourceConfig{
				Name: "Custom", FeedURL: "https://example.com/news", Language: "en", SourceType: "HTML",
				Scraper: &ScraperConfig{ItemSelector: ".item", TitleSelector: ".title", URLSelector: "a"},
			},
		},
		{
			name:    "missing name",
			source:  SourceConfig{FeedURL: "https://example.com/rss"},
			wantErr: true,
		},
		{
			name:    "missing feed URL",
			source:  SourceConfig{Name: "X"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			source:  SourceConfig{Name: "X", FeedURL: "https://example.com", SourceType: "GraphQL"},
			wantErr: true,
		},
		{
			name:    "HTML without scraper config",
			source:  SourceConfig{Name: "X", FeedURL: "https://example.com", SourceType: "HTML"},
			wantErr: true,
		},
		{
			name: "HTML with incomplete selectors",
			source: SourceConfig{
				Name: "X", FeedURL: "https://example.com", SourceType: "HTML",
				Scraper: &ScraperConfig{ItemSelector: ".item"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSourceConfig_ValidateDefaultsEmptyType(t *testing.T) {
	s := SourceConfig{Name: "Tuổi Trẻ", FeedURL: "https://tuoitre.vn/rss/tin-moi-nhat.rss", Language: "vi"}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if s.SourceType != "RSS" {
		t.Errorf("SourceType = %q, want RSS", s.SourceType)
	}
}
