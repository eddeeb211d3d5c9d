// Package source provides read access to the configured news source tables.
// Sources are static configuration, immutable for the process lifetime, so
// this service is a thin view over the config rather than a repository.
package source

import (
	"sort"

	"smart-news/internal/domain/entity"
)

// Service exposes the per-language source tables.
type Service struct {
	sources map[string][]entity.SourceConfig
}

// NewService creates a source Service over the given tables.
func NewService(sources map[string][]entity.SourceConfig) *Service {
	return &Service{sources: sources}
}

// Languages returns the configured language tags in sorted order.
func (s *Service) Languages() []string {
	languages := make([]string, 0, len(s.sources))
	for lang := range s.sources {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

// ListByLanguage returns the source table for one language.
// Unknown languages return an empty slice, not an error.
func (s *Service) ListByLanguage(language string) []entity.SourceConfig {
	return s.sources[language]
}

// ListAll returns every configured source grouped by language.
func (s *Service) ListAll() map[string][]entity.SourceConfig {
	return s.sources
}
