// Package importer parses bank statement files into transactions.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
)

// dateLayouts are tried in order when parsing statement dates.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
}

// CSVParser parses bank statement CSV exports. The header row must name a
// date, description and amount column; extra columns are ignored.
type CSVParser struct{}

// NewCSVParser creates a new CSV statement parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads a CSV statement and returns transactions for the given user
// and account. Positive amounts become credits, negative amounts debits;
// the signed amount is kept as-is.
func (p *CSVParser) Parse(ctx context.Context, reader io.Reader, userID, accountID string) ([]model.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	dateCol, descCol, amountCol, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	line := 1
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		record, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line+1, readErr)
		}
		line++

		txn, convErr := p.convertRecord(record, dateCol, descCol, amountCol, userID, accountID)
		if convErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, convErr)
		}
		transactions = append(transactions, *txn)
	}

	slog.Info("parsed CSV statement", "transactions", len(transactions))
	return transactions, nil
}

func (p *CSVParser) convertRecord(record []string, dateCol, descCol, amountCol int, userID, accountID string) (*model.Transaction, error) {
	if len(record) <= dateCol || len(record) <= descCol || len(record) <= amountCol {
		return nil, fmt.Errorf("row has %d columns, expected at least %d", len(record), amountCol+1)
	}

	date, err := parseDate(record[dateCol])
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(record[amountCol], ",", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", record[amountCol], err)
	}

	// The sign carries the direction; the stored amount is the magnitude.
	direction := model.DirectionDebit
	if amount.IsPositive() {
		direction = model.DirectionCredit
	}

	txn := &model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   accountID,
		Date:        date,
		Description: strings.TrimSpace(record[descCol]),
		Amount:      amount.Abs(),
		Direction:   direction,
	}
	txn.Hash = txn.GenerateHash()
	return txn, nil
}

// resolveColumns maps header names to column indexes.
func resolveColumns(header []string) (dateCol, descCol, amountCol int, err error) {
	dateCol, descCol, amountCol = -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "posted", "transaction date":
			if dateCol < 0 {
				dateCol = i
			}
		case "description", "memo", "name", "payee":
			if descCol < 0 {
				descCol = i
			}
		case "amount", "value":
			if amountCol < 0 {
				amountCol = i
			}
		}
	}
	if dateCol < 0 || descCol < 0 || amountCol < 0 {
		return 0, 0, 0, fmt.Errorf("CSV header must include date, description and amount columns, got %v", header)
	}
	return dateCol, descCol, amountCol, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
