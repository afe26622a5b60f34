// ABOUTME: CLI commands for the challenge window, title, and goal.
// ABOUTME: set-challenge, clear-challenge, set-title, set-goal, clear-goal, show-challenge.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/pushups/internal/models"
	"github.com/spf13/cobra"
)

var setChallengeCmd = &cobra.Command{
	Use:   "set-challenge <start> <end>",
	Short: "Set the challenge window",
	Long: `Set the challenge start and end dates (YYYY-MM-DD, UTC, inclusive).

The start must be strictly before the end.

EXAMPLES:

  pushups set-challenge 2025-06-01 2025-06-30`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.SetChallengeWindow(args[0], args[1]); err != nil {
			return err
		}
		c, err := repo.GetChallenge()
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Challenge set: %s to %s\n", c.Start, c.End)
		return nil
	},
}

var clearChallengeCmd = &cobra.Command{
	Use:   "clear-challenge",
	Short: "Clear the challenge window",
	Long: `Clear the challenge start and end dates.

Without a window, challenge totals fall back to all-time totals and rabbits
stay at 0. Title and goal are left as they are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ClearChallengeWindow(); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "✗ Challenge window cleared")
		return nil
	},
}

var setTitleCmd = &cobra.Command{
	Use:   "set-title [title]",
	Short: "Set or clear the challenge title",
	Long: `Set the challenge title shown on the board. With no title, clear it.

EXAMPLES:

  pushups set-title "June Pushups"
  pushups set-title                    # Clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			if err := repo.ClearTitle(); err != nil {
				return err
			}
			color.New(color.FgYellow).Fprintln(out, "✗ Title cleared")
			return nil
		}

		title := strings.Join(args, " ")
		if err := repo.SetTitle(title); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Title set: %s\n", title)
		return nil
	},
}

var setGoalCmd = &cobra.Command{
	Use:   "set-goal <n>",
	Short: "Set the shared challenge goal",
	Long:  `Set a shared pushup goal for the challenge. Must be a positive integer.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := models.ParseGoal(args[0])
		if err != nil {
			return err
		}
		if err := repo.SetGoal(goal); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Goal set: %d\n", goal)
		return nil
	},
}

var clearGoalCmd = &cobra.Command{
	Use:   "clear-goal",
	Short: "Clear the challenge goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ClearGoal(); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "✗ Goal cleared")
		return nil
	},
}

var showChallengeCmd = &cobra.Command{
	Use:     "show-challenge",
	Aliases: []string{"challenge"},
	Short:   "Show the challenge settings and standings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetChallenge()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		unset := faint.Sprint("(unset)")

		window := unset
		if c.HasWindow() {
			window = fmt.Sprintf("%s to %s", c.Start, c.End)
			if c.Contains(time.Now()) {
				window += color.New(color.FgGreen).Sprint(" (active)")
			}
		}
		title := unset
		if c.Title != nil {
			title = *c.Title
		}
		goal := unset
		if c.Goal != nil {
			goal = fmt.Sprintf("%d", *c.Goal)
		}

		fmt.Fprintf(out, "%s %s\n", padRight("Window:", 8), window)
		fmt.Fprintf(out, "%s %s\n", padRight("Title:", 8), title)
		fmt.Fprintf(out, "%s %s\n", padRight("Goal:", 8), goal)

		totals, err := repo.ChallengeTotals(time.Now(), cfg.Rabbit.Interval())
		if err != nil {
			return fmt.Errorf("failed to load totals: %w", err)
		}
		if len(totals) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		for _, t := range totals {
			name := t.Name
			if t.IsRabbit {
				name += " " + faint.Sprint("(rabbit)")
			}
			fmt.Fprintf(out, "  %s %d\n", padRight(name, 16), t.Total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setChallengeCmd)
	rootCmd.AddCommand(clearChallengeCmd)
	rootCmd.AddCommand(setTitleCmd)
	rootCmd.AddCommand(setGoalCmd)
	rootCmd.AddCommand(clearGoalCmd)
	rootCmd.AddCommand(showChallengeCmd)
}
