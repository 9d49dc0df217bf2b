package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/conanupdate/internal/infrastructure/repositories"
)

// Check is the interface for the check command.
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) (*CheckReport, error)
}

// ProgressFunc receives the number of finished version queries out of total.
type ProgressFunc func(done, total int)

// CheckOptions holds runtime options for a single check.
type CheckOptions struct {
	Path     string       // recipe file or directory containing one
	Upgrade  bool         // rewrite the recipe in place
	OnLocate func(entities.Recipe)
	Progress ProgressFunc // optional
}

// CheckReport is the outcome of a check.
type CheckReport struct {
	Recipe   entities.Recipe
	Target   entities.UpgradeLevel
	Results  []entities.UpdateResult
	Upgraded int // number of requirements rewritten, zero unless upgrading
}

// CheckCommand runs locate -> extract -> resolve -> plan and optionally
// rewrites the recipe.
type CheckCommand struct {
	locator           repositories.LocatorRepository
	extractorRegistry *infraRepos.ExtractorRegistry
	versions          repositories.VersionRepository
	writer            repositories.RecipeWriterRepository
	worktree          repositories.WorktreeRepository
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	locator repositories.LocatorRepository,
	extractorRegistry *infraRepos.ExtractorRegistry,
	versions repositories.VersionRepository,
	writer repositories.RecipeWriterRepository,
	worktree repositories.WorktreeRepository,
) *CheckCommand {
	return &CheckCommand{
		locator:           locator,
		extractorRegistry: extractorRegistry,
		versions:          versions,
		writer:            writer,
		worktree:          worktree,
	}
}

// Execute checks the recipe found at opts.Path for available updates.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CheckOptions,
) (*CheckReport, error) {
	target, err := settings.UpgradeLevel()
	if err != nil {
		return nil, err
	}

	recipe, err := it.locator.Locate(opts.Path, settings.Strict)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Using recipe %s (%s)", recipe.Path, recipe.Format)
	if opts.OnLocate != nil {
		opts.OnLocate(recipe)
	}

	reqs, err := it.extract(ctx, recipe, settings)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Found %d requirements", len(reqs))

	filter := entities.NewPackageFilter(settings.Filters...)
	names := make([]string, 0, len(reqs))
	for _, name := range entities.DistinctNames(reqs) {
		if filter.Matches(name) {
			names = append(names, name)
		}
	}

	sets := resolveVersions(ctx, it.versions, names, settings, opts.Progress)
	results := entities.PlanUpdates(reqs, sets, entities.PlanOptions{Target: target, Filter: filter})

	report := &CheckReport{Recipe: recipe, Target: target, Results: results}
	if !opts.Upgrade {
		return report, nil
	}

	it.warnIfDirty(recipe)
	upgraded, err := it.writer.Upgrade(recipe, results)
	if err != nil {
		return report, fmt.Errorf("failed to upgrade %s: %w", recipe.Path, err)
	}
	report.Upgraded = upgraded
	return report, nil
}

func (it *CheckCommand) extract(
	ctx context.Context,
	recipe entities.Recipe,
	settings *entities.Settings,
) ([]entities.Requirement, error) {
	extractor := it.extractorRegistry.Get(recipe.Format)
	if extractor == nil {
		return nil, &entities.ExtractionError{
			Path:  recipe.Path,
			Cause: fmt.Errorf(
				"no extractor registered for format %q (registered: %v)",
				recipe.Format, it.extractorRegistry.Formats(),
			),
		}
	}

	reqs, err := extractor.Extract(ctx, recipe, settings)
	if err != nil {
		if errors.Is(err, entities.ErrExtraction) {
			return nil, err
		}
		return nil, &entities.ExtractionError{Path: recipe.Path, Cause: err}
	}
	return reqs, nil
}

func (it *CheckCommand) warnIfDirty(recipe entities.Recipe) {
	if it.worktree == nil {
		return
	}
	dirty, err := it.worktree.HasUncommittedChanges(recipe.Path)
	if err != nil {
		logger.Debugf("Could not inspect git status of %s: %v", recipe.Path, err)
		return
	}
	if dirty {
		logger.Warnf("%s has uncommitted changes, the upgrade will be mixed with them", recipe.Path)
	}
}
