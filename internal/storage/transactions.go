package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/service"
)

const transactionColumns = `id, user_id, account_id, hash, date, description,
	amount, direction, category_id, category_validated, created_at`

// SaveTransactions persists a batch of transactions, skipping rows whose
// hash already exists. Returns the number of rows actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR IGNORE INTO transactions
		(id, user_id, account_id, hash, date, description, amount, direction, category_id, category_validated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for i := range transactions {
		txn := &transactions[i]
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		if txn.CreatedAt.IsZero() {
			txn.CreatedAt = time.Now().UTC()
		}

		var accountID any
		if txn.AccountID != "" {
			accountID = txn.AccountID
		}

		result, execErr := stmt.ExecContext(ctx,
			txn.ID, txn.UserID, accountID, txn.Hash, txn.Date, txn.Description,
			txn.Amount.String(), string(txn.Direction), txn.CategoryID,
			txn.CategoryValidated, txn.CreatedAt)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, execErr)
		}
		if n, raErr := result.RowsAffected(); raErr == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Info("saved transactions",
		"total", len(transactions),
		"inserted", inserted,
		"duplicates", len(transactions)-inserted)
	return inserted, nil
}

// GetTransactionByID returns a single transaction owned by the given user.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, userID, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ?`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// GetTransactions returns a user's transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var conditions []string
	args := []any{userID}
	conditions = append(conditions, "user_id = ?")

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date < ?")
		args = append(args, *filter.EndDate)
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	switch filter.Status {
	case model.StatusUnclassified:
		conditions = append(conditions, "category_id IS NULL AND category_validated = 0")
	case model.StatusSuggested:
		conditions = append(conditions, "category_id IS NOT NULL AND category_validated = 0")
	case model.StatusValidated:
		conditions = append(conditions, "category_id IS NOT NULL AND category_validated = 1")
	case model.StatusRejected:
		conditions = append(conditions, "category_id IS NULL AND category_validated = 1")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date DESC, id`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransactionCategory sets or clears a transaction's category reference
// and validated flag.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, userID, id string, categoryID *int64, validated bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ?, category_validated = ? WHERE id = ? AND user_id = ?`,
		categoryID, validated, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	return nil
}

// DeleteTransaction removes a transaction owned by the given user.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanTransaction.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var (
		txn       model.Transaction
		accountID sql.NullString
		amount    string
		direction string
	)
	err := row.Scan(
		&txn.ID, &txn.UserID, &accountID, &txn.Hash, &txn.Date, &txn.Description,
		&amount, &direction, &txn.CategoryID, &txn.CategoryValidated, &txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.AccountID = accountID.String
	txn.Direction = model.Direction(direction)
	txn.Amount, err = parseAmount(amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", txn.ID, err)
	}
	return &txn, nil
}
