package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
)

// UpsertBudget inserts or replaces the budget for (user, category, month).
func (s *SQLiteStorage) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO budgets (user_id, category_id, month, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category_id, month) DO UPDATE SET amount = excluded.amount
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		budget.UserID, budget.CategoryID, budget.Month,
		budget.Amount.String(), budget.CreatedAt,
	).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	return nil
}

// GetBudgets returns a user's budgets for one month.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, userID, month string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(month, "month"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, category_id, month, amount, created_at
		FROM budgets
		WHERE user_id = ? AND month = ?
		ORDER BY category_id`

	rows, err := s.db.QueryContext(ctx, query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var (
			budget model.Budget
			amount string
		)
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryID,
			&budget.Month, &amount, &budget.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budget.Amount, err = parseAmount(amount)
		if err != nil {
			return nil, fmt.Errorf("budget %d: %w", budget.ID, err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// DeleteBudget removes a budget owned by the given user.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, userID string, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: budget %d", common.ErrNotFound, id)
	}

	return nil
}
