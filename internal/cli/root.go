// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludos1978/lexera/internal/config"
	"github.com/ludos1978/lexera/internal/ui"
)

var (
	// Global flags
	configPath string

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexera",
	Short: "Lexera - markdown kanban board tooling",
	Long: `Lexera maintains markdown kanban boards: it migrates boards from the
old tag convention to the new one and supervises the sync server.

OLD SYSTEM                NEW SYSTEM
  # tags                    # tags AND people
  @ people AND dates        @ ALL temporal (dates, times, weeks, weekdays)
  ! temporal                ! no longer used for tags`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch boards or config still get a usable cfg.
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// resolveBoardsPath picks the boards path from the positional argument or
// the configured default.
func resolveBoardsPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	path, err := getConfig().GetBoardsPath()
	if err != nil {
		return "", fmt.Errorf(`no path specified

Either:
  1. Pass a file or directory: lexera migrate ./boards
  2. Set default_boards in %s`, config.DefaultPath())
	}
	return path, nil
}

// requireExistingPath verifies the target exists before processing.
func requireExistingPath(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("path not found: %s", path)
	}
	return nil
}
