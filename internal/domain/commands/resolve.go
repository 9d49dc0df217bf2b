package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// resolveVersions prepares the repository once, then queries every name on a
// bounded pool. Each step gets its own deadline; a failed query only marks
// that name's set as failed.
func resolveVersions(
	ctx context.Context,
	repo repositories.VersionRepository,
	names []string,
	settings *entities.Settings,
	progress ProgressFunc,
) map[string]entities.VersionSet {
	if len(names) > 0 {
		prepareCtx, cancel := context.WithTimeout(ctx, settings.QueryTimeout())
		if err := repo.Prepare(prepareCtx, settings); err != nil {
			logger.Warnf("[conan] %v", err)
		}
		cancel()
	}

	slots := make([]entities.VersionSet, len(names))

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		progress(done, len(names))
	}
	if progress != nil {
		progress(0, len(names))
	}

	var group errgroup.Group
	group.SetLimit(settings.Concurrency)
	for i, name := range names {
		group.Go(func() error {
			slots[i] = queryVersions(ctx, repo, name, settings)
			report()
			return nil
		})
	}
	_ = group.Wait() // tasks never fail, errors live in the slots

	sets := make(map[string]entities.VersionSet, len(slots))
	for _, set := range slots {
		sets[set.Name] = set
	}
	return sets
}

func queryVersions(
	ctx context.Context,
	repo repositories.VersionRepository,
	name string,
	settings *entities.Settings,
) entities.VersionSet {
	queryCtx, cancel := context.WithTimeout(ctx, settings.QueryTimeout())
	defer cancel()

	refs, err := repo.SearchVersions(queryCtx, name, settings)
	if err != nil {
		if errors.Is(queryCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s", settings.QueryTimeout())
		}
		logger.Warnf("[conan] Searching versions of %s failed: %v", name, err)
		return entities.VersionSet{Name: name, Err: &entities.QueryError{Package: name, Cause: err}}
	}

	logger.Debugf("[conan] Found %d references for %s", len(refs), name)
	return entities.VersionSet{Name: name, References: refs}
}
