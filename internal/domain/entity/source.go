package entity

import (
	"errors"
	"fmt"
)

// SourceConfig identifies one feed to aggregate. The set of sources per
// language is fixed at configuration time and immutable for the process
// lifetime.
// For HTML-list sources, it also includes the CSS selector configuration.
type SourceConfig struct {
	Name       string         `json:"name" yaml:"name"`
	FeedURL    string         `json:"feed_url" yaml:"feed_url"`
	Language   string         `json:"language" yaml:"language"`
	SourceType string         `json:"source_type" yaml:"source_type"` // RSS, HTML
	Scraper    *ScraperConfig `json:"scraper,omitempty" yaml:"scraper,omitempty"`
}

// ScraperConfig holds the CSS selector configuration for HTML-list sources
// that publish no feed. All selectors are required for the HTML source type.
type ScraperConfig struct {
	ItemSelector  string `json:"item_selector" yaml:"item_selector"`
	TitleSelector string `json:"title_selector" yaml:"title_selector"`
	DescSelector  string `json:"desc_selector,omitempty" yaml:"desc_selector,omitempty"`
	DateSelector  string `json:"date_selector,omitempty" yaml:"date_selector,omitempty"`
	URLSelector   string `json:"url_selector" yaml:"url_selector"`
	DateFormat    string `json:"date_format,omitempty" yaml:"date_format,omitempty"`
	URLPrefix     string `json:"url_prefix,omitempty" yaml:"url_prefix,omitempty"` // Prepend to relative URLs
}

// Validate validates the SourceConfig fields.
// It checks that the source type is valid and that required configuration is present.
func (s *SourceConfig) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "source name is required"}
	}
	if s.FeedURL == "" {
		return &ValidationError{Field: "feed_url", Message: "feed URL is required"}
	}

	// SourceTypeが空の場合はRSSとみなす（後方互換性）
	if s.SourceType == "" {
		s.SourceType = "RSS"
	}

	validTypes := map[string]bool{
		"RSS":  true,
		"HTML": true,
	}
	if !validTypes[s.SourceType] {
		return fmt.Errorf("invalid source_type: %s (must be RSS or HTML)", s.SourceType)
	}

	if s.SourceType == "HTML" {
		if s.Scraper == nil {
			return errors.New("scraper config is required for HTML sources")
		}
		if s.Scraper.ItemSelector == "" || s.Scraper.TitleSelector == "" || s.Scraper.URLSelector == "" {
			return errors.New("scraper config must set item, title, and url selectors")
		}
	}

	return nil
}
