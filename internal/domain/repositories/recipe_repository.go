package repositories

import (
	"context"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

// LocatorRepository finds the recipe file for a path.
type LocatorRepository interface {
	// Locate resolves a file or directory path to a recipe. When strict is set,
	// a directory holding more than one recipe variant is an error.
	Locate(path string, strict bool) (entities.Recipe, error)
}

// RequirementRepository extracts declared requirements from one recipe format.
type RequirementRepository interface {
	// Format returns the recipe format this extractor understands.
	Format() entities.RecipeFormat

	// Extract returns the recipe's requirements in declaration order.
	Extract(ctx context.Context, recipe entities.Recipe, settings *entities.Settings) ([]entities.Requirement, error)
}

// RecipeWriterRepository patches versions into a recipe in place.
type RecipeWriterRepository interface {
	// Upgrade rewrites the version text of every result that has an update and
	// returns the number of patched requirements. Nothing is written on error.
	Upgrade(recipe entities.Recipe, results []entities.UpdateResult) (int, error)
}
