package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
)

// UpsertCategory inserts a category or, when (user_id, name) already exists,
// resolves to the existing row. Concurrent first-time provisioning for the
// same user therefore converges on a single row per name.
func (s *SQLiteStorage) UpsertCategory(ctx context.Context, userID, name, icon string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO categories (user_id, name, icon, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO UPDATE SET icon = excluded.icon
		RETURNING id, user_id, name, icon, created_at`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, userID, name, icon, time.Now().UTC()).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q", common.ErrConstraintViolation, name)
		}
		return nil, fmt.Errorf("failed to upsert category: %w", err)
	}

	slog.Debug("upserted category", "user_id", userID, "name", name, "id", cat.ID)
	return &cat, nil
}

// GetCategories returns all categories for a user, ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, icon, created_at
		FROM categories
		WHERE user_id = ?
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetCategoryByID returns a category owned by the given user. A category
// owned by someone else is reported as not found rather than leaked.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, userID string, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, icon, created_at
		FROM categories
		WHERE id = ? AND user_id = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// GetCategoryByName returns a user's category by name.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, icon, created_at
		FROM categories
		WHERE user_id = ? AND name = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, userID, name).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %q", common.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// DeleteCategory removes a category. Transactions referencing it keep their
// rows; the foreign key clears the reference.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, userID string, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	slog.Info("deleted category", "user_id", userID, "id", id)
	return nil
}
