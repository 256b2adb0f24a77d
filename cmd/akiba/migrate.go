package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/storage"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has the product and customer
tables and their indexes.`,
		Args: cobra.NoArgs,
		RunE: a.runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func (a *app) runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	dbPath := a.settings.Database.Path

	slog.Info("Starting database migration",
		"database", dbPath,
		"driver", a.settings.Database.Driver,
		"status_only", status)

	store, err := storage.NewSQLiteStorageWithDriver(a.settings.Database.Driver, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatTitle("Database Migration Status"))
		fmt.Fprintf(out, "Database:        %s\n", dbPath)
		fmt.Fprintf(out, "Current version: %d\n", current)
		fmt.Fprintf(out, "Latest version:  %d\n", storage.ExpectedSchemaVersion)
		if current < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, cli.FormatWarning("Pending migrations. Run 'akiba migrate' to apply them."))
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d.", storage.ExpectedSchemaVersion)))
	return nil
}
