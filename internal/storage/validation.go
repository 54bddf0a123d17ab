package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hollis/pennyflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidBudget      = errors.New("invalid budget")
	ErrInvalidGoal        = errors.New("invalid goal")
	ErrInvalidHolding     = errors.New("invalid holding")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if !txn.Direction.Valid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidTransaction, txn.Direction)
	}
	return nil
}

// validateAccount validates an account.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if account.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if account.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidAccount)
	}
	if account.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	return nil
}

// validateBudget validates a budget.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if budget.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidBudget)
	}
	if budget.CategoryID == 0 {
		return fmt.Errorf("%w: missing category ID", ErrInvalidBudget)
	}
	if len(budget.Month) != 7 {
		return fmt.Errorf("%w: month %q must use the 2006-01 layout", ErrInvalidBudget, budget.Month)
	}
	if budget.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidBudget)
	}
	return nil
}

// validateGoal validates a savings goal.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if goal.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidGoal)
	}
	if goal.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGoal)
	}
	if goal.TargetAmount.IsNegative() || goal.TargetAmount.IsZero() {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidGoal)
	}
	return nil
}

// validateHolding validates an asset or liability entry.
func validateHolding(holding *model.Holding) error {
	if holding == nil {
		return fmt.Errorf("%w: holding", ErrNilParameter)
	}
	if holding.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidHolding)
	}
	if holding.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidHolding)
	}
	if holding.Kind != model.HoldingAsset && holding.Kind != model.HoldingLiability {
		return fmt.Errorf("%w: kind %q", ErrInvalidHolding, holding.Kind)
	}
	return nil
}
