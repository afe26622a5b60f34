// ABOUTME: Root Cobra command for pushups CLI.
// ABOUTME: Loads config and handles the store lifecycle via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/pushups/internal/config"
	"github.com/harperreed/pushups/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string

	cfg   *config.Config
	store *storage.DB
	repo  storage.Repository
)

// skipStore marks commands that manage the database handle themselves.
const skipStore = "skip-store"

var rootCmd = &cobra.Command{
	Use:   "pushups",
	Short: "Multi-user pushup leaderboard",
	Long: `Pushups runs a small shared pushup leaderboard.

Each participant gets a secret link to log counts. Totals show on a public
odometer board, optionally scoped to a time-boxed challenge with a title,
a goal, and synthetic "rabbit" pacers.

QUICK START:

  $ pushups add-user alice              # Prints alice's secret link
  $ pushups set-challenge 2025-06-01 2025-06-30
  $ pushups set-title "June Pushups"
  $ pushups serve                       # http://localhost:3000

RABBITS:

  A rabbit is a pacer that climbs linearly to its target by the end of
  the challenge.

  $ pushups add-user pacer
  $ pushups set-rabbit pacer 3000

MCP INTEGRATION:

  Run 'pushups mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/pushups/pushups.db.
  Override with --db or database.path in ~/.config/pushups/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if cmd.Annotations[skipStore] != "" {
			return nil
		}

		store, err = storage.Open(resolveDBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		repo = store
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			err := store.Close()
			store, repo = nil, nil
			return err
		}
		return nil
	},
}

// resolveDBPath prefers --db over the configured path.
func resolveDBPath() string {
	if dbPath != "" {
		return config.ExpandPath(dbPath)
	}
	return cfg.GetDBPath()
}

// shutdownContext is cancelled on SIGINT or SIGTERM.
func shutdownContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default ~/.local/share/pushups/pushups.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/pushups/config.yaml)")
}
