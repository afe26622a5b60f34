// ABOUTME: CLI command for running the leaderboard web server.
// ABOUTME: Serves the REST API and pages until SIGINT/SIGTERM.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/pushups/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the HTTP server for the public board and secret entry links.

ENDPOINTS:

  GET  /                        Public odometer board
  GET  /<secret>                Entry page for one participant
  GET  /api/challenge           Challenge window, title, goal, rabbits
  GET  /api/challenge/totals    Totals within the challenge window
  GET  /api/totals              All-time totals
  POST /api/push                Log pushups {person, count, secret}
  GET  /api/history?secret=     Last 10 entries
  GET  /api/admin-info?secret=  Name and totals for a secret
  GET  /healthz                 Liveness and schema version

CONFIGURATION:

  The listen address comes from --addr, PORT, PUSHUPS_SERVER_ADDRESS, or
  server.address in the config file (default :3000).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pushups",
		})
		if cfg.Server.Debug {
			logger.SetLevel(log.DebugLevel)
		}

		addr := cfg.Server.Address
		if serveAddr != "" {
			addr = serveAddr
		}

		server := api.NewServer(repo, api.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RabbitInterval: cfg.Rabbit.Interval(),
			Logger:         logger,
			Debug:          cfg.Server.Debug,
		})

		ctx, stop := shutdownContext()
		defer stop()

		logger.Info("starting", "db", store.Path(), "rabbit_interval", cfg.Rabbit.Interval())
		return server.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
