// Package export renders a user's transactions as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hollis/pennyflow/internal/model"
)

const sheetName = "Transactions"

var headers = []string{"Date", "Description", "Amount", "Direction", "Category", "Status"}

// WriteWorkbook writes an XLSX workbook with one row per transaction.
// categoryNames resolves category IDs to display names; unknown or missing
// categories render blank.
func WriteWorkbook(w io.Writer, transactions []model.Transaction, categoryNames map[int64]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i := range transactions {
		txn := &transactions[i]

		category := ""
		if txn.CategoryID != nil {
			category = categoryNames[*txn.CategoryID]
		}

		amount, _ := txn.Amount.Float64()
		values := []any{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			amount,
			string(txn.Direction),
			category,
			string(txn.Status()),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
