// Package output writes stockist records to tabular files.
package output

import (
	"errors"
	"fmt"

	"monitaly-stockists/internal/types"
)

// Format represents output format types.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrNoRecords is returned when there is nothing to write. No file is created.
var ErrNoRecords = errors.New("no stockists to save")

// Headers is the fixed column order of every output file.
var Headers = []string{"COUNTRY", "STOCKIST", "CITY", "SOCIAL LINK"}

// Writer serializes stockist records to a file.
type Writer interface {
	// WriteFile writes the header row followed by one row per record.
	WriteFile(path string, records []types.StockistRecord) error
}

// NewWriter creates a writer for the specified format.
func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatCSV, "":
		return &CSVWriter{}, nil
	case FormatXLSX:
		return &XLSXWriter{Sheet: "Stockists"}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func row(r types.StockistRecord) []string {
	return []string{r.Country, r.StockistName, r.City, r.SocialLink}
}
