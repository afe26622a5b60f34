// ABOUTME: MCP tool implementations for the pushup leaderboard.
// ABOUTME: Read-only queries over the challenge and its totals.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/pushups/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_challenge",
		Description: "Get the current challenge window, title, goal, and rabbit pacers",
	}, s.handleGetChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_totals",
		Description: "Get all-time pushup totals for every participant",
	}, s.handleGetTotals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_challenge_totals",
		Description: "Get pushup totals within the challenge window, including rabbit pacers",
	}, s.handleGetChallengeTotals)
}

// Tool input/output types

type emptyInput struct{}

type rabbitOutput struct {
	Name   string `json:"name"`
	Target int    `json:"target"`
}

type challengeOutput struct {
	Start   string         `json:"start"`
	End     string         `json:"end"`
	Title   *string        `json:"title,omitempty"`
	Goal    *int           `json:"goal,omitempty"`
	Rabbits []rabbitOutput `json:"rabbits,omitempty"`
	Active  bool           `json:"active"`
}

type totalsOutput struct {
	Totals map[string]int `json:"totals"`
}

type challengeTotalsOutput struct {
	Totals  map[string]int `json:"totals"`
	Rabbits []string       `json:"rabbits,omitempty"`
}

// Tool handlers

func (s *Server) challenge() (*challengeOutput, error) {
	c, err := s.repo.GetChallenge()
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	users, err := s.repo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := &challengeOutput{
		Start:  c.Start,
		End:    c.End,
		Title:  c.Title,
		Goal:   c.Goal,
		Active: c.Contains(s.now()),
	}
	for _, u := range users {
		if u.IsRabbit {
			out.Rabbits = append(out.Rabbits, rabbitOutput{Name: u.Name, Target: u.RabbitTarget})
		}
	}
	return out, nil
}

func (s *Server) handleGetChallenge(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, challengeOutput, error) {
	out, err := s.challenge()
	if err != nil {
		return nil, challengeOutput{}, err
	}
	return nil, *out, nil
}

func (s *Server) handleGetTotals(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, totalsOutput, error) {
	totals, err := s.repo.Totals()
	if err != nil {
		return nil, totalsOutput{}, fmt.Errorf("failed to get totals: %w", err)
	}
	return nil, totalsOutput{Totals: models.TotalsMap(totals)}, nil
}

func (s *Server) handleGetChallengeTotals(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, challengeTotalsOutput, error) {
	totals, err := s.repo.ChallengeTotals(s.now(), s.interval)
	if err != nil {
		return nil, challengeTotalsOutput{}, fmt.Errorf("failed to get challenge totals: %w", err)
	}

	out := challengeTotalsOutput{Totals: models.TotalsMap(totals)}
	for _, t := range totals {
		if t.IsRabbit {
			out.Rabbits = append(out.Rabbits, t.Name)
		}
	}
	return nil, out, nil
}
