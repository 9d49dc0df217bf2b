//go:build unit

package recipe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/infrastructure/repositories/recipe"
	doubles "github.com/rios0rios0/conanupdate/test/infrastructure/repositorydoubles"
)

func writeRecipe(t *testing.T, content string, perm os.FileMode) entities.Recipe {
	t.Helper()
	path := filepath.Join(t.TempDir(), entities.RecipeFileText)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return entities.Recipe{Path: path, Format: entities.RecipeFormatText}
}

func plan(content string, published map[string][]string) []entities.UpdateResult {
	sets := make(map[string]entities.VersionSet, len(published))
	for name, versions := range published {
		sets[name] = entities.VersionSet{Name: name, References: doubles.PublishedVersions(versions...)}
	}
	return entities.PlanUpdates(recipe.ParseText(content), sets, entities.PlanOptions{Target: entities.UpgradeMajor})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriterRepositoryUpgrade(t *testing.T) {
	t.Parallel()

	t.Run("should replace only the version text", func(t *testing.T) {
		t.Parallel()

		// given
		content := "[requires]\nfmt/8.0.0\n"
		target := writeRecipe(t, content, 0o600)
		results := plan(content, map[string][]string{"fmt": {"8.0.0", "9.0.0"}})

		// when
		count, err := recipe.NewWriterRepository().Upgrade(target, results)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "[requires]\nfmt/9.0.0\n", readFile(t, target.Path))
	})

	t.Run("should preserve every other byte and the file mode", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# deps\r\n[requires]\r\n  zlib/1.2.11   \r\npoco/1.10.0@bincrafters/stable\r\nspdlog/1.9.0\r\n\r\n[options]\r\nzlib/*:shared=True"
		target := writeRecipe(t, content, 0o640)
		results := plan(content, map[string][]string{
			"zlib":   {"1.2.13", "1.3.1"},
			"spdlog": {"1.9.0"},
		})

		// when
		count, err := recipe.NewWriterRepository().Upgrade(target, results)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		expected := "# deps\r\n[requires]\r\n  zlib/1.3.1   \r\npoco/1.10.0@bincrafters/stable\r\nspdlog/1.9.0\r\n\r\n[options]\r\nzlib/*:shared=True"
		assert.Equal(t, expected, readFile(t, target.Path))
		info, statErr := os.Stat(target.Path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("should leave the file untouched without updates", func(t *testing.T) {
		t.Parallel()

		// given
		content := "[requires]\nfmt/9.0.0\n"
		target := writeRecipe(t, content, 0o600)
		results := plan(content, map[string][]string{"fmt": {"8.0.0", "9.0.0"}})

		// when
		count, err := recipe.NewWriterRepository().Upgrade(target, results)

		// then
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Equal(t, content, readFile(t, target.Path))
	})

	t.Run("should refuse to write when the recipe changed after extraction", func(t *testing.T) {
		t.Parallel()

		// given
		content := "[requires]\nfmt/8.0.0\nzlib/1.2.11\n"
		target := writeRecipe(t, content, 0o600)
		results := plan(content, map[string][]string{"fmt": {"9.0.0"}, "zlib": {"1.3.1"}})
		changed := "[requires]\nfmt/8.1.0\nzlib/1.2.11\n"
		require.NoError(t, os.WriteFile(target.Path, []byte(changed), 0o600))

		// when
		count, err := recipe.NewWriterRepository().Upgrade(target, results)

		// then
		require.Error(t, err)
		assert.Zero(t, count)
		assert.Equal(t, changed, readFile(t, target.Path))
	})

	t.Run("should skip requirements without a location", func(t *testing.T) {
		t.Parallel()

		// given
		content := "[requires]\nfmt/8.0.0\n"
		target := writeRecipe(t, content, 0o600)
		results := plan(content, map[string][]string{"fmt": {"9.0.0"}})
		results[0].Requirement.Location = entities.SourceLocation{}

		// when
		count, err := recipe.NewWriterRepository().Upgrade(target, results)

		// then
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Equal(t, content, readFile(t, target.Path))
	})
}
