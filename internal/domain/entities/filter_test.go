//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

func TestPackageFilterMatches(t *testing.T) {
	t.Parallel()

	t.Run("should include everything without patterns", func(t *testing.T) {
		t.Parallel()

		// given
		filter := entities.NewPackageFilter()

		// when
		matched := filter.Matches("boost")

		// then
		assert.True(t, matched)
	})

	t.Run("should match wildcards case-sensitively", func(t *testing.T) {
		t.Parallel()

		// given
		filter := entities.NewPackageFilter("boost*", "f?t")

		// then
		assert.True(t, filter.Matches("boost"))
		assert.True(t, filter.Matches("boost_ext"))
		assert.True(t, filter.Matches("fmt"))
		assert.False(t, filter.Matches("Boost"))
		assert.False(t, filter.Matches("spdlog"))
	})

	t.Run("should exclude names matched by an inverted pattern", func(t *testing.T) {
		t.Parallel()

		// given
		filter := entities.NewPackageFilter("!boost*")

		// then
		assert.False(t, filter.Matches("boost"))
		assert.True(t, filter.Matches("fmt"))
	})

	t.Run("should apply every exclusion even when another pattern accepts the name", func(t *testing.T) {
		t.Parallel()

		// given
		filter := entities.NewPackageFilter("!boost*", "!openssl")

		// then
		assert.False(t, filter.Matches("boost"))
		assert.False(t, filter.Matches("openssl"))
		assert.True(t, filter.Matches("fmt"))
	})

	t.Run("should let exclusions win over inclusions", func(t *testing.T) {
		t.Parallel()

		// given
		filter := entities.NewPackageFilter("boost*", "!boost_ext")

		// then
		assert.True(t, filter.Matches("boost"))
		assert.False(t, filter.Matches("boost_ext"))
		assert.False(t, filter.Matches("fmt"))
	})

	t.Run("should fall back to literal comparison for malformed patterns", func(t *testing.T) {
		t.Parallel()

		// given
		filter := entities.NewPackageFilter("[abc", " ")

		// then
		assert.True(t, filter.Matches("[abc"))
		assert.False(t, filter.Matches("abc"))
	})
}
