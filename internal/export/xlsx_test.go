package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hollis/pennyflow/internal/model"
)

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	groceries := int64(7)
	transactions := []model.Transaction{
		{
			ID:                "txn-1",
			UserID:            "user-1",
			Date:              time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Description:       "WHOLE FOODS MARKET",
			Amount:            decimal.RequireFromString("54.23"),
			Direction:         model.DirectionDebit,
			CategoryID:        &groceries,
			CategoryValidated: true,
		},
		{
			ID:          "txn-2",
			UserID:      "user-1",
			Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Description: "ATM WITHDRAWAL",
			Amount:      decimal.RequireFromString("100.00"),
			Direction:   model.DirectionDebit,
		},
	}

	var buf bytes.Buffer
	err := WriteWorkbook(&buf, transactions, map[int64]string{groceries: "Food & Dining"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Description", "Amount", "Direction", "Category", "Status"}, rows[0])

	assert.Equal(t, "2026-03-14", rows[1][0])
	assert.Equal(t, "WHOLE FOODS MARKET", rows[1][1])
	assert.Equal(t, "54.23", rows[1][2])
	assert.Equal(t, "debit", rows[1][3])
	assert.Equal(t, "Food & Dining", rows[1][4])
	assert.Equal(t, string(model.StatusValidated), rows[1][5])

	assert.Equal(t, "ATM WITHDRAWAL", rows[2][1])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, string(model.StatusUnclassified), rows[2][5])
}

func TestWriteWorkbookEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteWorkbook(&buf, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
