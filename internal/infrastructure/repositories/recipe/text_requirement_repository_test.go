//go:build unit

package recipe_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/infrastructure/repositories/recipe"
)

const sampleText = `[requires]
boost/1.79.0
catch2/3.2.0
# fmt/8.0.0
poco/1.11.0@bincrafters/stable

[generators]
CMakeDeps

[tool_requires]
  cmake/3.24.0
ninja/[>=1.10 <2]

[options]
boost/*:shared=True
`

func TestParseText(t *testing.T) {
	t.Parallel()

	t.Run("should extract requirement sections in declaration order", func(t *testing.T) {
		t.Parallel()

		// when
		reqs := recipe.ParseText(sampleText)

		// then
		require.Len(t, reqs, 5)
		assert.Equal(t, "boost", reqs[0].Name)
		assert.Equal(t, "catch2", reqs[1].Name)
		assert.Equal(t, "poco", reqs[2].Name)
		assert.Equal(t, "bincrafters", reqs[2].User)
		assert.Equal(t, "cmake", reqs[3].Name)
		assert.Equal(t, entities.KindToolRequires, reqs[3].Kind)
		assert.True(t, reqs[4].IsRange())
		for _, req := range reqs {
			assert.Equal(t, entities.SyntaxText, req.Syntax)
		}
	})

	t.Run("should locate every version text", func(t *testing.T) {
		t.Parallel()

		// when
		reqs := recipe.ParseText(sampleText)

		// then
		for _, req := range reqs {
			loc := req.Location
			assert.Equal(t, req.Version, sampleText[loc.Offset:loc.Offset+loc.Length], req.Name)
		}
		assert.Equal(t, 2, reqs[0].Location.Line)
		assert.Equal(t, 11, reqs[3].Location.Line)
	})

	t.Run("should handle CRLF line endings", func(t *testing.T) {
		t.Parallel()

		// given
		content := "[requires]\r\nfmt/8.0.0\r\nzlib/1.2.11\r\n"

		// when
		reqs := recipe.ParseText(content)

		// then
		require.Len(t, reqs, 2)
		assert.Equal(t, "8.0.0", content[reqs[0].Location.Offset:reqs[0].Location.Offset+reqs[0].Location.Length])
		assert.Equal(t, "1.2.11", content[reqs[1].Location.Offset:reqs[1].Location.Offset+reqs[1].Location.Length])
	})

	t.Run("should skip malformed lines", func(t *testing.T) {
		t.Parallel()

		// given
		content := "[requires]\nnot a reference\nfmt/8.0.0\n"

		// when
		reqs := recipe.ParseText(content)

		// then
		require.Len(t, reqs, 1)
		assert.Equal(t, "fmt", reqs[0].Name)
	})

	t.Run("should return nothing without requirement sections", func(t *testing.T) {
		t.Parallel()

		// when
		reqs := recipe.ParseText("[generators]\nCMakeToolchain\n")

		// then
		assert.Empty(t, reqs)
	})
}

func TestTextRequirementRepositoryExtract(t *testing.T) {
	t.Parallel()

	t.Run("should read and parse the recipe file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), entities.RecipeFileText)
		require.NoError(t, os.WriteFile(path, []byte(sampleText), 0o600))
		repo := recipe.NewTextRequirementRepository()

		// when
		reqs, err := repo.Extract(
			context.Background(), entities.Recipe{Path: path, Format: entities.RecipeFormatText}, entities.DefaultSettings(),
		)

		// then
		require.NoError(t, err)
		assert.Len(t, reqs, 5)
		assert.Equal(t, entities.RecipeFormatText, repo.Format())
	})

	t.Run("should fail with an extraction error for unreadable files", func(t *testing.T) {
		t.Parallel()

		// given
		repo := recipe.NewTextRequirementRepository()
		missing := entities.Recipe{Path: filepath.Join(t.TempDir(), "conanfile.txt"), Format: entities.RecipeFormatText}

		// when
		_, err := repo.Extract(context.Background(), missing, entities.DefaultSettings())

		// then
		require.ErrorIs(t, err, entities.ErrExtraction)
	})
}
