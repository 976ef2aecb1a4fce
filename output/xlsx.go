package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"monitaly-stockists/internal/types"
)

// XLSXWriter writes a single-sheet Excel workbook.
type XLSXWriter struct {
	Sheet string
}

// WriteFile writes records to path as an .xlsx workbook.
func (w *XLSXWriter) WriteFile(path string, records []types.StockistRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", toCells(Headers)); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := rowCell(i + 2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row(r))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// rowCell returns the first cell of a 1-based sheet row, e.g. A2.
func rowCell(row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return "", fmt.Errorf("row %d: %w", row, err)
	}
	return cell, nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
