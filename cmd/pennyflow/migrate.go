package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollis/pennyflow/internal/cli"
	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current schema version without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	statusOnly, _ := cmd.Flags().GetBool("status")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if statusOnly {
		version, verErr := store.SchemaVersion(ctx)
		if verErr != nil {
			return verErr
		}
		fmt.Println(cli.FormatInfo(fmt.Sprintf("schema version %d (latest %d)", version, storage.ExpectedSchemaVersion)))
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("database migrated to version %d", storage.ExpectedSchemaVersion)))
	return nil
}
