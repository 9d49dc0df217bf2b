package main

import (
	"context"
	"os"
	"os/signal"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/conanupdate/internal"
	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // build-time injection

func buildRootCommand(controller entities.Controller) *cobra.Command {
	bind := controller.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          controller.Execute,
	}

	controller.AddFlags(cmd)
	cmd.Flags().BoolP("version", "V", false, "Show the version and exit")
	cmd.SetVersionTemplate("{{.Version}}\n")
	return cmd
}

// addSubcommands binds every controller after the root one as a subcommand.
func addSubcommands(rootCmd *cobra.Command, controllers []entities.Controller) {
	for _, controller := range controllers {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE:  controller.Execute,
		}
		controller.AddFlags(subCmd)
		rootCmd.AddCommand(subCmd)
	}
}

func newApp(appContext *internal.AppInternal) *cobra.Command {
	controllers := appContext.GetControllers()
	rootCmd := buildRootCommand(controllers[0])
	addSubcommands(rootCmd, controllers[1:])
	return rootCmd
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cobraRoot := newApp(injectAppContext())
	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		logger.Errorf("Error executing 'conanupdate': %s", err)
		stop()
		os.Exit(1)
	}
}
