// Package testutil provides shared helpers for tests that need a database.
package testutil

import (
	"context"
	"testing"

	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database that is closed
// when the test finishes.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedUser creates a user for tests. The password hash is a placeholder;
// tests that exercise login go through the auth package instead.
func SeedUser(t *testing.T, store *storage.SQLiteStorage, email string) *model.User {
	t.Helper()

	user, err := store.CreateUser(context.Background(), email, "x")
	if err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}
	return user
}
