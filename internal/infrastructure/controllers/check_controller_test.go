//go:build unit

package controllers_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/conanupdate/internal/domain/commands"
	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/infrastructure/controllers"
	"github.com/rios0rios0/conanupdate/test/domain/commanddoubles"
)

func newCommand(t *testing.T, controller *controllers.CheckController, flags map[string]string) *cobra.Command {
	t.Helper()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: controller.GetBind().Use}
	controller.AddFlags(cmd)
	if _, ok := flags["cwd"]; !ok {
		require.NoError(t, cmd.Flags().Set("cwd", t.TempDir()))
	}
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func sampleReport() *commands.CheckReport {
	current := entities.MustParseVersion("8.0.0")
	latest := entities.MustParseVersion("9.0.0")
	return &commands.CheckReport{
		Recipe: entities.Recipe{Path: "conanfile.txt", Format: entities.RecipeFormatText},
		Target: entities.UpgradeMajor,
		Results: []entities.UpdateResult{{
			Requirement: entities.Requirement{Name: "fmt", Version: "8.0.0"},
			Current:     &current,
			Latest:      &latest,
			Status:      entities.StatusUpdateAvailable,
		}},
	}
}

func TestCheckControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass flags and filters to the command and print the report", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{Report: sampleReport()}
		var out, errOut bytes.Buffer
		controller := controllers.NewCheckControllerWithOutput(stub, &out, &errOut)
		cmd := newCommand(t, controller, map[string]string{
			"target":      "minor",
			"timeout":     "5",
			"concurrency": "3",
			"remote":      "conancenter",
			"upgrade":     "true",
		})

		// when
		err := controller.Execute(cmd, []string{"!boost*", "fmt"})

		// then
		require.NoError(t, err)
		require.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "minor", stub.LastSettings.Target)
		assert.Equal(t, 5, stub.LastSettings.Timeout)
		assert.Equal(t, 3, stub.LastSettings.Concurrency)
		assert.Equal(t, "conancenter", stub.LastSettings.Remote)
		assert.Equal(t, []string{"!boost*", "fmt"}, stub.LastSettings.Filters)
		assert.True(t, stub.LastOpts.Upgrade)
		assert.Contains(t, out.String(), "Checking conanfile.txt")
		assert.Contains(t, out.String(), "9.0.0")
		assert.Empty(t, errOut.String())
	})

	t.Run("should layer flags over the config file", func(t *testing.T) {
		t.Parallel()

		// given
		config := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(config, []byte("timeout: 7\nconcurrency: 4\nfilters: [\"zlib\"]\n"), 0o600))
		stub := &commanddoubles.StubCheckCommand{Report: sampleReport()}
		controller := controllers.NewCheckControllerWithOutput(stub, &bytes.Buffer{}, &bytes.Buffer{})
		cmd := newCommand(t, controller, map[string]string{"config": config, "concurrency": "2"})

		// when
		err := controller.Execute(cmd, []string{"fmt"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, stub.LastSettings.Timeout)
		assert.Equal(t, 2, stub.LastSettings.Concurrency)
		assert.Equal(t, []string{"zlib", "fmt"}, stub.LastSettings.Filters)
	})

	t.Run("should return command errors without printing a table", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{ExecuteErr: entities.ErrNotFound}
		var out bytes.Buffer
		controller := controllers.NewCheckControllerWithOutput(stub, &out, &bytes.Buffer{})
		cmd := newCommand(t, controller, nil)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.Empty(t, out.String())
	})

	t.Run("should reject invalid settings before running the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{}
		controller := controllers.NewCheckControllerWithOutput(stub, &bytes.Buffer{}, &bytes.Buffer{})
		cmd := newCommand(t, controller, map[string]string{"target": "latest"})

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestCheckControllerGetBind(t *testing.T) {
	t.Parallel()

	t.Run("should describe the root command", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCheckController(&commanddoubles.StubCheckCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "conanupdate [filter...]", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}
