package controllers

import (
	"io"

	"github.com/rios0rios0/conanupdate/internal/domain/commands"
)

// NewCheckControllerWithOutput creates a CheckController writing to the given streams.
func NewCheckControllerWithOutput(command commands.Check, out, errOut io.Writer) *CheckController {
	return &CheckController{command: command, out: out, errOut: errOut}
}

// NewProgressBarForTest exports newProgressBar for testing.
var NewProgressBarForTest = newProgressBar //nolint:gochecknoglobals // test export
