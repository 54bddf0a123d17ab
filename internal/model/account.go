package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of bank account.
type AccountType string

// Account type constants.
const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

// Account is a connected or manually imported bank account. It holds a
// running balance plus its transactions; there is no double-entry ledger.
type Account struct {
	CreatedAt   time.Time       `json:"created_at"`
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Institution string          `json:"institution"`
	Type        AccountType     `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
}
