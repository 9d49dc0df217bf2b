package controllers

import (
	"context"
	"io"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/conanupdate/internal/domain/commands"
	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

// CheckController handles the root command: check a recipe for updates and
// optionally upgrade it.
type CheckController struct {
	command commands.Check
	out     io.Writer
	errOut  io.Writer
}

// NewCheckController creates a new CheckController printing to the standard streams.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command, out: os.Stdout, errOut: os.Stderr}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "conanupdate [filter...]",
		Short: "Check for updates of your conanfile.txt/conanfile.py requirements",
		Long: `Check for updates of your conanfile.txt/conanfile.py requirements.

Filters include only package names matching any of the given strings or
patterns. Wildcards (*, ?) are allowed and patterns can be inverted with a
prepended !, e.g. '!boost*'.`,
	}
}

// AddFlags registers the check flags on cmd.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("cwd", ".",
		"Path to a folder containing a recipe or to a recipe file directly (conanfile.py or conanfile.txt)")
	flags.String("target", entities.UpgradeMajor.String(), "Limit update level: major, minor or patch")
	flags.Int("timeout", entities.DefaultTimeoutSeconds, "Timeout for `conan search` in seconds")
	flags.BoolP("upgrade", "u", false, "Overwrite the recipe with upgraded versions")
	flags.Int("concurrency", entities.DefaultConcurrency, "Maximum number of parallel `conan search` queries")
	flags.String("conan", entities.DefaultConanBinary, "Conan executable")
	flags.String("python", entities.DefaultPythonBinary, "Python interpreter used to evaluate conanfile.py")
	flags.String("remote", "", "Search only this Conan remote (default: all remotes)")
	flags.StringP("config", "c", "", "Path to config file (default: auto-detect)")
	flags.Bool("strict", false, "Fail when a folder contains both conanfile.py and conanfile.txt")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
}

// Execute runs the check and prints the report. Errors are returned to Cobra.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	cwd, _ := cmd.Flags().GetString("cwd")
	upgrade, _ := cmd.Flags().GetBool("upgrade")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	presenter := NewTablePresenter(it.out)
	progress := NewProgressBar(it.errOut)

	report, err := it.command.Execute(ctx, settings, commands.CheckOptions{
		Path:     cwd,
		Upgrade:  upgrade,
		OnLocate: presenter.RenderHeader,
		Progress: progress.Update,
	})
	progress.Close()

	if report != nil {
		presenter.Render(report, upgrade)
	}
	return err
}

// loadSettings layers defaults, the config file and explicitly set flags.
func loadSettings(cmd *cobra.Command, args []string) (*entities.Settings, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	cwd, _ := flags.GetString("cwd")

	if configPath == "" {
		if found, err := entities.FindConfigFile(configDir(cwd)); err == nil {
			configPath = found
		}
	}

	settings := entities.DefaultSettings()
	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if flags.Changed("target") {
		settings.Target, _ = flags.GetString("target")
	}
	if flags.Changed("timeout") {
		settings.Timeout, _ = flags.GetInt("timeout")
	}
	if flags.Changed("concurrency") {
		settings.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("conan") {
		settings.ConanBinary, _ = flags.GetString("conan")
	}
	if flags.Changed("python") {
		settings.PythonBinary, _ = flags.GetString("python")
	}
	if flags.Changed("remote") {
		settings.Remote, _ = flags.GetString("remote")
	}
	if flags.Changed("strict") {
		settings.Strict, _ = flags.GetBool("strict")
	}
	settings.Filters = append(settings.Filters, args...)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// configDir is the directory searched for a config file: cwd itself, or the
// folder of the recipe when cwd points at a file.
func configDir(cwd string) string {
	if info, err := os.Stat(cwd); err == nil && !info.IsDir() {
		return filepath.Dir(cwd)
	}
	return cwd
}
