package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// WriterRepository rewrites version texts of a recipe on disk.
type WriterRepository struct{}

// NewWriterRepository creates a new recipe writer.
func NewWriterRepository() repositories.RecipeWriterRepository {
	return &WriterRepository{}
}

type patch struct {
	offset      int
	length      int
	replacement string
	req         entities.Requirement
}

// Upgrade patches every located requirement that has an update. All patches
// are validated before the file is replaced atomically.
func (w *WriterRepository) Upgrade(recipe entities.Recipe, results []entities.UpdateResult) (int, error) {
	info, err := os.Stat(recipe.Path)
	if err != nil {
		return 0, err
	}
	content, err := os.ReadFile(recipe.Path)
	if err != nil {
		return 0, err
	}

	patches := collectPatches(results)
	if len(patches) == 0 {
		return 0, nil
	}

	updated, err := applyPatches(string(content), patches)
	if err != nil {
		return 0, err
	}

	if writeErr := writeAtomic(recipe.Path, []byte(updated), info.Mode().Perm()); writeErr != nil {
		return 0, writeErr
	}
	for _, p := range patches {
		logger.Debugf("[recipe] Upgraded %s to %s", describe(p.req), p.replacement)
	}
	return len(patches), nil
}

func collectPatches(results []entities.UpdateResult) []patch {
	patches := make([]patch, 0, len(results))
	for _, result := range results {
		if !result.HasUpdate() {
			continue
		}
		req := result.Requirement
		if !req.Location.Located() {
			logger.Warnf("[recipe] Cannot rewrite %s: declaration not found in the recipe text", req.Reference())
			continue
		}
		patches = append(patches, patch{
			offset:      req.Location.Offset,
			length:      req.Location.Length,
			replacement: result.Latest.String(),
			req:         req,
		})
	}
	return patches
}

// applyPatches replaces each patch's span of content. Every span must still
// hold the declared version and spans must not overlap.
func applyPatches(content string, patches []patch) (string, error) {
	sorted := make([]patch, len(patches))
	copy(sorted, patches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].offset < sorted[j].offset })

	var sb strings.Builder
	sb.Grow(len(content))
	cursor := 0
	for _, p := range sorted {
		end := p.offset + p.length
		if p.offset < cursor || end > len(content) {
			return "", fmt.Errorf("invalid position for %s", describe(p.req))
		}
		if content[p.offset:end] != p.req.Version {
			return "", fmt.Errorf(
				"recipe changed since it was read: expected %q for %s",
				p.req.Version, describe(p.req),
			)
		}
		sb.WriteString(content[cursor:p.offset])
		sb.WriteString(p.replacement)
		cursor = end
	}
	sb.WriteString(content[cursor:])
	return sb.String(), nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
