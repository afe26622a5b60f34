// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"github.com/harperreed/pushups/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read the leaderboard through a
standardized protocol. The server communicates via stdin/stdout and never
modifies data.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "pushups": {
        "command": "pushups",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_challenge          Challenge window, title, goal, and rabbits
  get_totals             All-time totals
  get_challenge_totals   Totals within the challenge window

AVAILABLE RESOURCES:

  pushups://leaderboard  Ranked standings with challenge settings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, mcp.Options{RabbitInterval: cfg.Rabbit.Interval()})
		if err != nil {
			return err
		}

		ctx, stop := shutdownContext()
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
