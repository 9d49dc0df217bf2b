package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// LocatorRepository finds conanfile.py / conanfile.txt on the local filesystem.
type LocatorRepository struct{}

// NewLocatorRepository creates a new filesystem recipe locator.
func NewLocatorRepository() repositories.LocatorRepository {
	return &LocatorRepository{}
}

// Locate resolves path to a recipe. A directory containing both variants
// yields conanfile.py unless strict is set, in which case it is an error.
func (l *LocatorRepository) Locate(path string, strict bool) (entities.Recipe, error) {
	info, err := os.Stat(path)
	if err != nil {
		return entities.Recipe{}, fmt.Errorf("%w: invalid path %s", entities.ErrNotFound, path)
	}

	if !info.IsDir() {
		format, ok := entities.FormatForFile(filepath.Base(path))
		if !ok {
			return entities.Recipe{}, fmt.Errorf("%w: path is not a conanfile: %s", entities.ErrNotFound, path)
		}
		return entities.Recipe{Path: path, Format: format}, nil
	}

	var found []entities.Recipe
	for _, name := range entities.RecipeFileNames() {
		candidate := filepath.Join(path, name)
		if stat, statErr := os.Stat(candidate); statErr == nil && stat.Mode().IsRegular() {
			format, _ := entities.FormatForFile(name)
			found = append(found, entities.Recipe{Path: candidate, Format: format})
		}
	}

	switch {
	case len(found) == 0:
		return entities.Recipe{}, fmt.Errorf("%w: could not find conanfile in path %s", entities.ErrNotFound, path)
	case len(found) > 1 && strict:
		return entities.Recipe{}, fmt.Errorf(
			"%w: %s contains both %s and %s",
			entities.ErrAmbiguous, path, entities.RecipeFilePython, entities.RecipeFileText,
		)
	case len(found) > 1:
		logger.Debugf("[recipe] %s contains several recipes, using %s", path, found[0].Path)
	}
	return found[0], nil
}
