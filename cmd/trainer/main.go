package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/state"
)

// #region root

var (
	configPath string
	dbOverride string
	appCfg     *config.AppConfig
	logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "trainer",
		Short:         "Adaptive cipher-puzzle N-back trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			if dbOverride != "" {
				cfg.Storage.Path = dbOverride
			}
			appCfg = cfg
			logger = cfg.Log.NewLogger(os.Stderr)
			slog.SetDefault(logger)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", envOr("CIPHER_CONFIG", "trainer.yaml"), "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "SQLite database path (overrides config)")
	rootCmd.AddCommand(playCmd, replayCmd, inspectCmd, settingsCmd)
}

// #endregion root

// #region main

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCmd.Execute()
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openStore() (*state.Store, error) {
	store, err := state.NewStore(appCfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", appCfg.Storage.Path, err)
	}
	return store, nil
}

// #endregion helpers
