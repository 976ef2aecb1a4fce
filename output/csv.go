package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"monitaly-stockists/internal/types"
)

// CSVWriter writes comma-separated UTF-8 output.
type CSVWriter struct{}

// WriteFile writes records as CSV to path. Rows go to a temporary file in the
// same directory which is renamed into place, so a failed write leaves no
// partial file behind.
func (w *CSVWriter) WriteFile(path string, records []types.StockistRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".stockists-*.csv")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()

	if err := writeCSV(f, records); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func writeCSV(out io.Writer, records []types.StockistRecord) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
