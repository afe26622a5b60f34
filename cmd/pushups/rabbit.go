// ABOUTME: CLI commands for rabbit pacer accounts.
// ABOUTME: set-rabbit and unset-rabbit.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/pushups/internal/models"
	"github.com/spf13/cobra"
)

var setRabbitCmd = &cobra.Command{
	Use:   "set-rabbit <name> <target>",
	Short: "Make a participant a rabbit pacer",
	Long: `Turn an existing participant into a rabbit. A rabbit's challenge total
climbs from 0 at the challenge start to TARGET at its end, ignoring any
entries it owns. Rabbits are left out of all-time totals.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := models.NormalizeName(args[0])
		target, err := strconv.Atoi(args[1])
		if err != nil {
			return models.Invalid("target", "must be an integer")
		}
		if err := repo.SetRabbit(name, target); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("user not found: %s", name)
			}
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s is now a rabbit → %d\n", name, target)
		return nil
	},
}

var unsetRabbitCmd = &cobra.Command{
	Use:   "unset-rabbit <name>",
	Short: "Make a rabbit a regular participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := models.NormalizeName(args[0])
		if err := repo.UnsetRabbit(name); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("user not found: %s", name)
			}
			return err
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ %s is no longer a rabbit\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setRabbitCmd)
	rootCmd.AddCommand(unsetRabbitCmd)
}
