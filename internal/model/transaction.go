// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moves funds into or out of an account.
type Direction string

// Direction constants.
const (
	// DirectionCredit represents inbound funds (deposits, salary, refunds).
	DirectionCredit Direction = "credit"
	// DirectionDebit represents outbound funds (purchases, bills, fees).
	DirectionDebit Direction = "debit"
)

// Valid reports whether the direction is one of the known constants.
func (d Direction) Valid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// CategorizationStatus describes where a transaction sits in the review lifecycle.
type CategorizationStatus string

// Categorization status constants.
const (
	StatusUnclassified CategorizationStatus = "UNCLASSIFIED"
	StatusSuggested    CategorizationStatus = "SUGGESTED"
	StatusValidated    CategorizationStatus = "VALIDATED"
	StatusRejected     CategorizationStatus = "REJECTED"
)

// Transaction represents a single financial transaction from any source.
type Transaction struct {
	Date              time.Time       `json:"date"`
	CreatedAt         time.Time       `json:"created_at"`
	CategoryID        *int64          `json:"category_id,omitempty"`
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	AccountID         string          `json:"account_id"`
	Description       string          `json:"description"` // Raw description, never mutated by matching
	Hash              string          `json:"-"`
	Direction         Direction       `json:"direction"`
	Amount            decimal.Decimal `json:"amount"`
	CategoryValidated bool            `json:"category_validated"`
}

// Status derives the review state from the category reference and validated flag.
func (t *Transaction) Status() CategorizationStatus {
	switch {
	case t.CategoryID == nil && !t.CategoryValidated:
		return StatusUnclassified
	case t.CategoryID != nil && !t.CategoryValidated:
		return StatusSuggested
	case t.CategoryID != nil:
		return StatusValidated
	default:
		return StatusRejected
	}
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		t.UserID,
		t.Date.Format("2006-01-02"),
		t.Amount.String(),
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
