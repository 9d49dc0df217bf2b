//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/conanupdate/internal/domain/commands"
	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

// StubCheckCommand is a stub implementation of commands.Check.
type StubCheckCommand struct {
	Report     *commands.CheckReport
	ExecuteErr error

	ExecuteCallCount int
	LastSettings     *entities.Settings
	LastOpts         commands.CheckOptions
}

var _ commands.Check = (*StubCheckCommand)(nil)

func (s *StubCheckCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.CheckOptions,
) (*commands.CheckReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.Report != nil && opts.OnLocate != nil {
		opts.OnLocate(s.Report.Recipe)
	}
	return s.Report, s.ExecuteErr
}
