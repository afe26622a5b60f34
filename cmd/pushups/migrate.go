// ABOUTME: CLI command for applying schema migrations.
// ABOUTME: Reports how many steps ran and the resulting schema version.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/pushups/internal/storage"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Bring the database schema up to date.

Every other command migrates automatically on open; this command does it
explicitly and reports what happened. Each step runs in its own
transaction, so a failure leaves the store at the last good version.`,
	Annotations: map[string]string{skipStore: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		db, err := storage.OpenUnmigrated(resolveDBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		applied, err := db.Migrate()
		if err != nil {
			return err
		}
		version, err := db.SchemaVersion()
		if err != nil {
			return err
		}

		if applied == 0 {
			color.New(color.FgYellow).Fprintf(out, "Schema is up to date (version %d)\n", version)
			return nil
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Applied %d migration(s), schema version %d\n", applied, version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
