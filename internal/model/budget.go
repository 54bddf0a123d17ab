package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps spending for one category in one calendar month.
// Month uses the "2006-01" layout.
type Budget struct {
	CreatedAt  time.Time       `json:"created_at"`
	UserID     string          `json:"user_id"`
	Month      string          `json:"month"`
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}
