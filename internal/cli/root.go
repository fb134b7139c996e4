// Package cli defines the satpocket command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dukerupert/satpocket/internal/config"
	"github.com/dukerupert/satpocket/internal/database"
	"github.com/dukerupert/satpocket/internal/logging"
	"github.com/dukerupert/satpocket/internal/state"
	"github.com/dukerupert/satpocket/internal/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "satpocket",
	Short: "A chore tracker that pays kids in sats",
	Long: `Satpocket is a local-first chore tracker for families. Kids earn
simulated satoshis for completed chores and learning modules, level up,
and unlock achievements. The daemon serves a JSON and WebSocket API for
whatever front end the household points at it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "satpocket.toml", "path to config file")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// openStore loads config and opens the durable store and state
// container shared by every command.
func openStore() (*state.Store, *storage.Store, config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, cfg, nil, nil, err
	}

	logger := logging.Setup(cfg.Log.Level)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, cfg, nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() { db.Close() }

	st := storage.New(db, cfg.Storage.Prefix, logger.With("component", "storage"))
	if !st.Available() {
		cleanup()
		return nil, nil, cfg, nil, nil, fmt.Errorf("durable storage is not writable at %s", cfg.Database.Path)
	}

	store := state.New(st, logger.With("component", "state"))
	return store, st, cfg, logger, cleanup, nil
}
