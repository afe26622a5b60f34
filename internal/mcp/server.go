// ABOUTME: MCP server setup for the pushup leaderboard.
// ABOUTME: Wraps the MCP server with read-only storage Repository access.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/pushups/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Options configures rabbit pacing and the clock.
type Options struct {
	RabbitInterval time.Duration
	Now            func() time.Time
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	interval  time.Duration
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts Options) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pushups",
			Version: Version,
		},
		nil,
	)

	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		interval:  opts.RabbitInterval,
		now:       opts.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
