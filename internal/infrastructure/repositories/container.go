package repositories

import (
	"go.uber.org/dig"

	conanRepo "github.com/rios0rios0/conanupdate/internal/infrastructure/repositories/conan"
	gitRepo "github.com/rios0rios0/conanupdate/internal/infrastructure/repositories/git"
	pyRepo "github.com/rios0rios0/conanupdate/internal/infrastructure/repositories/python"
	recipeRepo "github.com/rios0rios0/conanupdate/internal/infrastructure/repositories/recipe"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register extractor registry with one extractor per recipe format
	if err := container.Provide(func() *ExtractorRegistry {
		reg := NewExtractorRegistry()
		reg.Register(recipeRepo.NewTextRequirementRepository())
		reg.Register(pyRepo.NewPythonRequirementRepository())
		return reg
	}); err != nil {
		return err
	}

	providers := []any{
		recipeRepo.NewLocatorRepository,
		recipeRepo.NewWriterRepository,
		conanRepo.NewConanVersionRepository,
		gitRepo.NewWorktreeRepository,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
