package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
)

// CreateGoal inserts a new savings goal and fills in its generated ID.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, target_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		goal.UserID, goal.Name, goal.TargetAmount.String(),
		goal.CurrentAmount.String(), goal.TargetDate, goal.CreatedAt,
	).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetGoals returns all savings goals for a user.
func (s *SQLiteStorage) GetGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var (
			goal    model.Goal
			target  string
			current string
		)
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name,
			&target, &current, &goal.TargetDate, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if goal.TargetAmount, err = parseAmount(target); err != nil {
			return nil, fmt.Errorf("goal %d: %w", goal.ID, err)
		}
		if goal.CurrentAmount, err = parseAmount(current); err != nil {
			return nil, fmt.Errorf("goal %d: %w", goal.ID, err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// UpdateGoalProgress sets the current saved amount for a goal.
func (s *SQLiteStorage) UpdateGoalProgress(ctx context.Context, userID string, id int64, current decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE goals SET current_amount = ? WHERE id = ? AND user_id = ?`,
		current.String(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: goal %d", common.ErrNotFound, id)
	}

	return nil
}

// DeleteGoal removes a goal owned by the given user.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, userID string, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: goal %d", common.ErrNotFound, id)
	}

	return nil
}
