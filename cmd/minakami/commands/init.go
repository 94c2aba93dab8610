// ABOUTME: Init command creates the database and reports migration status
// ABOUTME: Safe to run repeatedly; existing data is never touched
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minakami/minakami/internal/storage/sqlite"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the tracking database",
		Long: `Create the SQLite database, apply schema migrations, and build
indexes. Running init on an existing database is safe: tables and
columns are only added, never dropped.`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	results := db.ApplyMigrations()
	db.CreateIndexes()

	applied := 0
	for _, r := range results {
		if r.Outcome == sqlite.MigrationApplied {
			applied++
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s.%s: %s\n", r.Table, r.Column, r.Outcome)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Database ready at %s (%d of %d migrations applied)\n",
			cfg.DBPath, applied, len(results))
	}
	return nil
}
