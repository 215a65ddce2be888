// Package export renders finance reports as xlsx workbooks for the school
// office. Workbooks are built in memory on demand; nothing is persisted.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ecole/internal/analytics"
)

const dateFormat = "2006-01-02"

// TransactionsWorkbook lays out the recent-transactions report with a header
// row, one row per transaction and a totals row.
func TransactionsWorkbook(transactions []analytics.Transaction) (*excelize.File, error) {
	const sheet = "Transactions"
	f, err := newWorkbook(sheet, []string{"Date", "Student", "Fee Type", "Method", "Status", "Amount"})
	if err != nil {
		return nil, err
	}

	var total float64
	for i, tx := range transactions {
		row := i + 2
		if err := setRow(f, sheet, row,
			tx.Date.Format(dateFormat), tx.Student, tx.FeeType, tx.Method, tx.Status, tx.Amount); err != nil {
			return nil, err
		}
		total += tx.Amount
	}
	if err := setRow(f, sheet, len(transactions)+2, "Total", "", "", "", "", total); err != nil {
		return nil, err
	}
	return f, nil
}

// ClassRevenueWorkbook lays out the per-class rollup with a totals row
// summing the expected, collected and outstanding columns.
func ClassRevenueWorkbook(rollup []analytics.ClassRevenue) (*excelize.File, error) {
	const sheet = "Class Revenue"
	f, err := newWorkbook(sheet, []string{"Class", "Students", "Expected", "Collected", "Outstanding", "Rate %"})
	if err != nil {
		return nil, err
	}

	var expected, collected, outstanding float64
	for i, row := range rollup {
		if err := setRow(f, sheet, i+2,
			row.Class, row.Students, row.TotalExpected, row.Collected, row.Outstanding, row.CollectionRate); err != nil {
			return nil, err
		}
		expected += row.TotalExpected
		collected += row.Collected
		outstanding += row.Outstanding
	}
	rate := 0
	if expected > 0 {
		rate = int(collected / expected * 100)
	}
	if err := setRow(f, sheet, len(rollup)+2, "Total", "", expected, collected, outstanding, rate); err != nil {
		return nil, err
	}
	return f, nil
}

func newWorkbook(sheet string, headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, sheet, 1, toAny(headers)...); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
