package main

import (
	"context"
	"fmt"

	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/service"
	"github.com/hollis/pennyflow/internal/storage"
)

// initStorage opens the configured database and runs migrations.
func initStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveUser maps the --user email flag to a user ID.
func resolveUser(ctx context.Context, store service.Storage, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("--user is required")
	}
	user, err := store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user %q: %w", email, err)
	}
	return user.ID, nil
}
