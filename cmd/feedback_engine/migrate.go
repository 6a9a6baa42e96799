package main

import (
	"fmt"

	"github.com/jonathan/feedback-engine/internal/db"
	"github.com/jonathan/feedback-engine/internal/localstore"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	Long:  "Creates the engine's tables in PostgreSQL when a database URL is configured, or in the SQLite file otherwise. Existing tables are left untouched.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(cmd.Context()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrated PostgreSQL schema")
		return nil
	}

	// Open migrates the SQLite schema.
	local, err := localstore.Open(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite store %s: %w", cfg.SQLitePath, err)
	}
	if err := local.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated SQLite schema at %s\n", cfg.SQLitePath)
	return nil
}
