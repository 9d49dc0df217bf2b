package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// WorktreeRepository reads the Git status of recipe files.
type WorktreeRepository struct{}

// NewWorktreeRepository creates a go-git backed worktree inspector.
func NewWorktreeRepository() repositories.WorktreeRepository {
	return &WorktreeRepository{}
}

// HasUncommittedChanges reports whether path has staged, unstaged or
// untracked changes in the repository enclosing it.
func (w *WorktreeRepository) HasUncommittedChanges(path string) (bool, error) {
	absPath, err := resolve(path)
	if err != nil {
		return false, err
	}

	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(absPath), &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have no worktree to protect
		return false, nil //nolint:nilerr // nothing to compare against
	}

	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return false, fmt.Errorf("locating %s in worktree: %w", path, err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading worktree status: %w", err)
	}

	fileStatus, ok := status[filepath.ToSlash(rel)]
	if !ok {
		return false, nil
	}
	return fileStatus.Worktree != gogit.Unmodified || fileStatus.Staging != gogit.Unmodified, nil
}

func resolve(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(absPath)
}
