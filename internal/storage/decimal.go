package storage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are stored as TEXT so values round-trip without float drift.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
