package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/wdkit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wdkit settings",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}
		if err := paths.EnsureDirectories(); err != nil {
			return err
		}

		if _, err := os.Stat(paths.Config); err == nil && !configForce {
			return fmt.Errorf("settings file %s already exists (use --force to overwrite)", paths.Config)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check settings file: %w", err)
		}

		if err := config.DefaultSettings().Save(paths.Config); err != nil {
			return err
		}

		PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", paths.Config))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  `Print the settings after applying config.yaml and WDKIT_* environment overrides.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, settings, err := loadSettings()
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), settings)
		}

		w := cmd.OutOrStdout()
		PrintLabelValue(w, "Settings file", paths.Config)
		controlURL := settings.ControlURL
		if controlURL == "" {
			controlURL = "(launch browser)"
		}
		PrintLabelValue(w, "Control URL", controlURL)
		if settings.BrowserBin != "" {
			PrintLabelValue(w, "Browser", settings.BrowserBin)
		}
		PrintLabelValue(w, "Headless", strconv.FormatBool(settings.Headless))
		PrintLabelValue(w, "Page URL", settings.PageURL)
		PrintLabelValue(w, "Accuracy", formatFloat(settings.Accuracy))
		PrintLabelValue(w, "Timeout", settings.CommandTimeout().String())
		PrintLabelValue(w, "Log level", settings.LogLevel)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing settings file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
