package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rezeptex/pkg/rezeptex/config"
	"rezeptex/pkg/rezeptex/logging"
)

// cliState carries flag-derived state shared by subcommands.
type cliState struct {
	configPath string
	storePath  string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "rezeptex",
		Short: "Extract and browse recipes from xlsx recipe workbooks",
		Long: `rezeptex imports recipe workbooks (.xlsx), recovering per-recipe
ingredient lists, instructions, categories, and embedded images with
their rotation/flip/crop transforms, and stores them locally for
offline browsing.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(state.configPath)
			if err != nil {
				return err
			}
			if state.storePath != "" {
				cfg.StorePath = state.storePath
			}
			if state.logLevel != "" {
				cfg.LogLevel = state.logLevel
			}
			state.cfg = cfg
			state.logger = logging.New(os.Stderr, cfg.LogLevel)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", defaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&state.storePath, "store", "", "Override store database path")
	rootCmd.PersistentFlags().StringVar(&state.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newImportCommand(state),
		newListCommand(state),
		newShowCommand(state),
		newExportImagesCommand(state),
		newConfigInitCommand(state),
	)

	return rootCmd
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rezeptex", "config.toml")
}
