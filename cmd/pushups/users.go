// ABOUTME: CLI commands for managing participants.
// ABOUTME: add-user, list-users, and remove-user.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/pushups/internal/models"
	"github.com/spf13/cobra"
)

var addUserCmd = &cobra.Command{
	Use:   "add-user <name> [secret]",
	Short: "Add a participant",
	Long: `Add a participant and print their secret entry link.

Names are stored lowercase. When no secret is given a random one is
generated. Secrets must be a single URL path segment.

EXAMPLES:

  pushups add-user alice               # Random secret
  pushups add-user bob hunter2         # Explicit secret`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := models.NewSecret()
		if len(args) == 2 {
			secret = args[1]
		}

		u, err := repo.CreateUser(args[0], secret)
		if err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return fmt.Errorf("user %q or that secret already exists", models.NormalizeName(args[0]))
			}
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s\n", u.Name)
		fmt.Fprintf(out, "  link: /%s\n", u.Secret)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:     "list-users",
	Aliases: []string{"users"},
	Short:   "List participants",
	Long: `List participants with their secret links and all-time totals.

Rabbits are marked with their pacing target.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := repo.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		totals, err := repo.Totals()
		if err != nil {
			return fmt.Errorf("failed to load totals: %w", err)
		}
		byName := models.TotalsMap(totals)

		faint := color.New(color.Faint)
		yellow := color.New(color.FgYellow)
		for _, u := range users {
			detail := fmt.Sprintf("%d", byName[u.Name])
			if u.IsRabbit {
				detail = yellow.Sprintf("rabbit → %d", u.RabbitTarget)
			}
			fmt.Fprintf(out, "%s %s %s\n",
				padRight(u.Name, 16),
				faint.Sprint("/"+u.Secret),
				detail)
		}
		return nil
	},
}

var removeUserCmd = &cobra.Command{
	Use:     "remove-user <name>",
	Aliases: []string{"rm-user"},
	Short:   "Remove a participant",
	Long: `Remove a participant. Their logged entries are kept but no longer
count toward any total.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := models.NormalizeName(args[0])
		if err := repo.RemoveUser(name); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("user not found: %s", name)
			}
			return err
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Removed %s\n", name)
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(listUsersCmd)
	rootCmd.AddCommand(removeUserCmd)
}
