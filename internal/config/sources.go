// Package config holds the application-level configuration: the per-language
// source tables, the speech engine settings, and the API security settings.
package config

import (
	"fmt"
	"os"

	"smart-news/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the language tag served when the caller's tag is
// unknown or empty.
const DefaultLanguage = "vi"

// defaultSources are the compiled-in source tables. A YAML file named by
// NEWS_SOURCES_FILE replaces them entirely when present.
var defaultSources = map[string][]entity.SourceConfig{
	"vi": {
		{Name: "VnExpress", FeedURL: "https://vnexpress.net/rss/tin-moi-nhat.rss", Language: "vi", SourceType: "RSS"},
		{Name: "Tuổi Trẻ", FeedURL: "https://tuoitre.vn/rss/tin-moi-nhat.rss", Language: "vi", SourceType: "RSS"},
		{Name: "Thanh Niên", FeedURL: "https://thanhnien.vn/rss/home.rss", Language: "vi", SourceType: "RSS"},
		{Name: "Dân Trí", FeedURL: "https://dantri.com.vn/rss/home.rss", Language: "vi", SourceType: "RSS"},
		{Name: "VietnamNet", FeedURL: "https://vietnamnet.vn/rss/tin-moi-nong.rss", Language: "vi", SourceType: "RSS"},
	},
	"en": {
		{Name: "BBC News", FeedURL: "https://feeds.bbci.co.uk/news/rss.xml", Language: "en", SourceType: "RSS"},
		{Name: "CNN", FeedURL: "http://rss.cnn.com/rss/edition.rss", Language: "en", SourceType: "RSS"},
		{Name: "Reuters", FeedURL: "https://www.reutersagency.com/feed/?best-topics=top-news", Language: "en", SourceType: "RSS"},
		{Name: "The Guardian", FeedURL: "https://www.theguardian.com/world/rss", Language: "en", SourceType: "RSS"},
	},
	"zh": {
		{Name: "BBC中文", FeedURL: "https://feeds.bbci.co.uk/zhongwen/simp/rss.xml", Language: "zh", SourceType: "RSS"},
		{Name: "新华网", FeedURL: "http://www.xinhuanet.com/politics/news_politics.xml", Language: "zh", SourceType: "RSS"},
	},
}

// sourcesFile mirrors the YAML override file layout:
//
//	sources:
//	  vi:
//	    - name: VnExpress
//	      feed_url: https://...
//	      source_type: RSS
type sourcesFile struct {
	Sources map[string][]entity.SourceConfig `yaml:"sources"`
}

// LoadSources returns the per-language source tables. When the
// NEWS_SOURCES_FILE environment variable names a YAML file, its tables
// replace the compiled-in defaults; every entry is validated either way.
func LoadSources() (map[string][]entity.SourceConfig, error) {
	path := os.Getenv("NEWS_SOURCES_FILE")
	if path == "" {
		return validateSources(copySources(defaultSources))
	}

	// #nosec G304 -- path comes from the operator's environment, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s defines no sources", path)
	}

	return validateSources(file.Sources)
}

func copySources(in map[string][]entity.SourceConfig) map[string][]entity.SourceConfig {
	out := make(map[string][]entity.SourceConfig, len(in))
	for lang, srcs := range in {
		out[lang] = append([]entity.SourceConfig(nil), srcs...)
	}
	return out
}

func validateSources(tables map[string][]entity.SourceConfig) (map[string][]entity.SourceConfig, error) {
	if _, ok := tables[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("source tables must include the default language %q", DefaultLanguage)
	}
	for lang, srcs := range tables {
		for i := range srcs {
			if srcs[i].Language == "" {
				srcs[i].Language = lang
			}
			if err := srcs[i].Validate(); err != nil {
				return nil, fmt.Errorf("source %q (%s): %w", srcs[i].Name, lang, err)
			}
		}
	}
	return tables, nil
}
