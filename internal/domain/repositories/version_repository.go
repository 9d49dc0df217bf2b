package repositories

import (
	"context"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

// VersionRepository lists the versions a package index publishes for a package.
type VersionRepository interface {
	// Prepare runs one-off setup shared by every query of a run, such as
	// detecting the client version. It is called before the queries start.
	Prepare(ctx context.Context, settings *entities.Settings) error

	// SearchVersions queries all published references of the named package.
	// The context carries the per-query deadline.
	SearchVersions(ctx context.Context, name string, settings *entities.Settings) ([]entities.PublishedReference, error)
}

// WorktreeRepository inspects the version control state of a recipe.
type WorktreeRepository interface {
	// HasUncommittedChanges reports whether path is tracked in a Git worktree
	// and differs from HEAD. Paths outside a repository report false.
	HasUncommittedChanges(path string) (bool, error)
}
