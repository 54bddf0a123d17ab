package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal tracked toward a target amount.
type Goal struct {
	CreatedAt     time.Time       `json:"created_at"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	ID            int64           `json:"id"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
}
