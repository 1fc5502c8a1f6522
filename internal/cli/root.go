// hookcfg - Lint and hook configuration toolkit
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/hookcfg

// Package cli provides Cobra-based CLI commands for hookcfg. It defines
// the check/show/fmt commands over a repository's lint and hook
// configuration, the init scaffolder, watch mode, and version output.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/hookcfg/internal/config"
)

// Command group IDs for organizing help output
const (
	GroupChecks        = "checks"
	GroupEditing       = "editing"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "hookcfg",
	Short: "lint and hook configuration toolkit",
	Long: `hookcfg - lint and hook configuration toolkit

Loads the lint/hook configuration of a Python repository (the pre-commit
manifest, flake8 and isort settings, setup.cfg aliases), checks its
structural properties, and rewrites the files canonically. The external
tools themselves are never invoked.

Source: https://github.com/ariel-frischer/hookcfg`,
	Example: `  # Check every configuration surface in the current repository
  hookcfg check

  # Reject branch names used as revisions
  hookcfg check --strict-revs

  # Print the parsed records
  hookcfg show --json

  # Canonicalize the files in place
  hookcfg fmt

  # Re-check on every file change
  hookcfg watch`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupChecks, Title: "Checks:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupEditing, Title: "Editing:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".hookcfg.json", "Path to hookcfg config file")
}

// loadSettings loads the tool configuration honoring the --config flag
// and applies the color mode globally.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	switch settings.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	return settings, nil
}
