// ABOUTME: MCP resource implementations for the pushup leaderboard.
// ABOUTME: Provides the pushups://leaderboard snapshot resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/pushups/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const leaderboardURI = "pushups://leaderboard"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         leaderboardURI,
		Name:        "Pushup Leaderboard",
		Description: "Challenge settings with ranked challenge totals and all-time totals",
		MIMEType:    "application/json",
	}, s.handleLeaderboardResource)
}

type leaderboardRow struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Total  int    `json:"total"`
	Rabbit bool   `json:"rabbit,omitempty"`
}

type leaderboard struct {
	Challenge   *challengeOutput `json:"challenge"`
	Standings   []leaderboardRow `json:"standings"`
	AllTime     map[string]int   `json:"all_time"`
	GeneratedAt string           `json:"generated_at"`
}

// rank orders totals by descending total, then name. Ties share a rank.
func rank(totals []models.Total) []leaderboardRow {
	sorted := append([]models.Total(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].Name < sorted[j].Name
	})

	rows := make([]leaderboardRow, 0, len(sorted))
	for i, t := range sorted {
		r := i + 1
		if i > 0 && t.Total == sorted[i-1].Total {
			r = rows[i-1].Rank
		}
		rows = append(rows, leaderboardRow{Rank: r, Name: t.Name, Total: t.Total, Rabbit: t.IsRabbit})
	}
	return rows
}

func (s *Server) handleLeaderboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	challenge, err := s.challenge()
	if err != nil {
		return nil, err
	}

	now := s.now()
	windowed, err := s.repo.ChallengeTotals(now, s.interval)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge totals: %w", err)
	}
	allTime, err := s.repo.Totals()
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	result := leaderboard{
		Challenge:   challenge,
		Standings:   rank(windowed),
		AllTime:     models.TotalsMap(allTime),
		GeneratedAt: models.FormatTimestamp(now),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      leaderboardURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
