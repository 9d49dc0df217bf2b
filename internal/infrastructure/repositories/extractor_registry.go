package repositories

import (
	"sort"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// ExtractorRegistry manages the requirement extractors, one per recipe format.
type ExtractorRegistry struct {
	extractors map[entities.RecipeFormat]domainRepos.RequirementRepository
}

// NewExtractorRegistry creates an empty extractor registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		extractors: make(map[entities.RecipeFormat]domainRepos.RequirementRepository),
	}
}

// Register adds an extractor under its format, replacing any previous one.
func (r *ExtractorRegistry) Register(e domainRepos.RequirementRepository) {
	r.extractors[e.Format()] = e
}

// Get returns the extractor for the given format, or nil if not registered.
func (r *ExtractorRegistry) Get(format entities.RecipeFormat) domainRepos.RequirementRepository {
	return r.extractors[format]
}

// Formats returns the registered formats in sorted order.
func (r *ExtractorRegistry) Formats() []entities.RecipeFormat {
	formats := make([]entities.RecipeFormat, 0, len(r.extractors))
	for format := range r.extractors {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
