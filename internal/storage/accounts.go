package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
)

// CreateAccount inserts a new bank account.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO accounts (id, user_id, name, institution, type, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.UserID, account.Name, account.Institution,
		string(account.Type), account.Balance.String(), account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s", common.ErrDuplicateEntry, account.ID)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("created account", "user_id", account.UserID, "account_id", account.ID)
	return nil
}

// GetAccounts returns all accounts for a user, ordered by name.
func (s *SQLiteStorage) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, institution, type, balance, created_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetAccountByID returns an account owned by the given user.
func (s *SQLiteStorage) GetAccountByID(ctx context.Context, userID, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, institution, type, balance, created_at
		FROM accounts
		WHERE id = ? AND user_id = ?`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccountBalance sets the running balance of an account.
func (s *SQLiteStorage) UpdateAccountBalance(ctx context.Context, userID, id string, balance decimal.Decimal) error {
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
		`UPDATE accounts SET balance = ? WHERE id = ? AND user_id = ?`,
		balance.String(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, id)
	}

	return nil
}

// DeleteAccount removes an account. Its transactions keep their rows with the
// account reference cleared.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, userID, id string) error {
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
		`DELETE FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, id)
	}

	slog.Info("deleted account", "user_id", userID, "account_id", id)
	return nil
}

func scanAccount(row scanner) (*model.Account, error) {
	var (
		account     model.Account
		accountType string
		balance     string
	)
	err := row.Scan(
		&account.ID, &account.UserID, &account.Name, &account.Institution,
		&accountType, &balance, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	account.Type = model.AccountType(accountType)
	account.Balance, err = parseAmount(balance)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}
	return &account, nil
}
