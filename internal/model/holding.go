package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingKind separates what a user owns from what they owe.
type HoldingKind string

// Holding kind constants.
const (
	HoldingAsset     HoldingKind = "asset"
	HoldingLiability HoldingKind = "liability"
)

// Holding is a manually tracked asset or liability (property, vehicle,
// loan, mortgage) that feeds the net worth overview alongside account
// balances.
type Holding struct {
	CreatedAt time.Time       `json:"created_at"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Kind      HoldingKind     `json:"kind"`
	ID        int64           `json:"id"`
	Value     decimal.Decimal `json:"value"`
}
