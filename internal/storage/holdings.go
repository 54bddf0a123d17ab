package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
)

// CreateHolding inserts a new asset or liability entry.
func (s *SQLiteStorage) CreateHolding(ctx context.Context, holding *model.Holding) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHolding(holding); err != nil {
		return err
	}
	if holding.CreatedAt.IsZero() {
		holding.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO holdings (user_id, name, kind, value, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		holding.UserID, holding.Name, string(holding.Kind),
		holding.Value.String(), holding.CreatedAt,
	).Scan(&holding.ID)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// GetHoldings returns all asset and liability entries for a user.
func (s *SQLiteStorage) GetHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, kind, value, created_at
		FROM holdings
		WHERE user_id = ?
		ORDER BY kind, name`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var holdings []model.Holding
	for rows.Next() {
		var (
			holding model.Holding
			kind    string
			value   string
		)
		if err := rows.Scan(&holding.ID, &holding.UserID, &holding.Name,
			&kind, &value, &holding.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holding.Kind = model.HoldingKind(kind)
		if holding.Value, err = parseAmount(value); err != nil {
			return nil, fmt.Errorf("holding %d: %w", holding.ID, err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// DeleteHolding removes a holding owned by the given user.
func (s *SQLiteStorage) DeleteHolding(ctx context.Context, userID string, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM holdings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: holding %d", common.ErrNotFound, id)
	}

	return nil
}
