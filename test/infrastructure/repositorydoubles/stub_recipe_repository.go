//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// StubLocatorRepository implements repositories.LocatorRepository.
type StubLocatorRepository struct {
	Recipe    entities.Recipe
	LocateErr error

	// spy: inputs received
	LocatedPaths []string
	LastStrict   bool
}

var _ repositories.LocatorRepository = (*StubLocatorRepository)(nil)

func (s *StubLocatorRepository) Locate(path string, strict bool) (entities.Recipe, error) {
	s.LocatedPaths = append(s.LocatedPaths, path)
	s.LastStrict = strict
	return s.Recipe, s.LocateErr
}

// StubRequirementRepository implements repositories.RequirementRepository.
type StubRequirementRepository struct {
	RecipeFormat entities.RecipeFormat
	Requirements []entities.Requirement
	ExtractErr   error

	ExtractCalls int
}

var _ repositories.RequirementRepository = (*StubRequirementRepository)(nil)

func (s *StubRequirementRepository) Format() entities.RecipeFormat { return s.RecipeFormat }

func (s *StubRequirementRepository) Extract(
	_ context.Context,
	_ entities.Recipe,
	_ *entities.Settings,
) ([]entities.Requirement, error) {
	s.ExtractCalls++
	return s.Requirements, s.ExtractErr
}

// SpyRecipeWriterRepository implements repositories.RecipeWriterRepository and
// records every upgrade request.
type SpyRecipeWriterRepository struct {
	UpgradeErr error

	UpgradeCalls int
	LastResults  []entities.UpdateResult
}

var _ repositories.RecipeWriterRepository = (*SpyRecipeWriterRepository)(nil)

func (s *SpyRecipeWriterRepository) Upgrade(_ entities.Recipe, results []entities.UpdateResult) (int, error) {
	s.UpgradeCalls++
	s.LastResults = results
	if s.UpgradeErr != nil {
		return 0, s.UpgradeErr
	}
	count := 0
	for _, result := range results {
		if result.HasUpdate() {
			count++
		}
	}
	return count, nil
}

// StubWorktreeRepository implements repositories.WorktreeRepository.
type StubWorktreeRepository struct {
	Dirty bool
	Err   error

	CheckedPaths []string
}

var _ repositories.WorktreeRepository = (*StubWorktreeRepository)(nil)

func (s *StubWorktreeRepository) HasUncommittedChanges(path string) (bool, error) {
	s.CheckedPaths = append(s.CheckedPaths, path)
	return s.Dirty, s.Err
}
