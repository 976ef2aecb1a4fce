package output

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"monitaly-stockists/internal/types"
)

var sampleRecords = []types.StockistRecord{
	{Country: "France", StockistName: "Acme Supply", City: "Paris", SocialLink: "https://www.instagram.com/acmesupply/"},
	{Country: "USA", StockistName: "Westerly", City: "Portland, OR", SocialLink: ""},
	{Country: "UK", StockistName: `The "Good" Store`, City: "London\nEast", SocialLink: "https://instagram.com/good"},
}

func TestNewWriter(t *testing.T) {
	w, err := NewWriter(FormatCSV)
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	w, err = NewWriter("")
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	w, err = NewWriter(FormatXLSX)
	require.NoError(t, err)
	assert.IsType(t, &XLSXWriter{}, w)

	_, err = NewWriter("pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockists.csv")

	err := (&CSVWriter{}).WriteFile(path, sampleRecords)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(sampleRecords)+1)
	assert.Equal(t, []string{"COUNTRY", "STOCKIST", "CITY", "SOCIAL LINK"}, rows[0])
	for i, r := range sampleRecords {
		assert.Equal(t, []string{r.Country, r.StockistName, r.City, r.SocialLink}, rows[i+1])
	}
}

func TestCSVWriter_EmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockists.csv")

	err := (&CSVWriter{}).WriteFile(path, nil)

	assert.True(t, errors.Is(err, ErrNoRecords))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCSVWriter_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "stockists.csv")

	err := (&CSVWriter{}).WriteFile(path, sampleRecords)

	assert.Error(t, err)
}

func TestCSVWriter_FailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	// renaming onto a directory fails after the rows were written
	path := filepath.Join(dir, "stockists.csv")
	require.NoError(t, os.Mkdir(path, 0755))

	err := (&CSVWriter{}).WriteFile(path, sampleRecords)

	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stockists.csv", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestCSVWriter_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockists.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content\nmore,rows\nstale,data\nx,y\nz,w\n"), 0644))

	require.NoError(t, (&CSVWriter{}).WriteFile(path, sampleRecords[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "COUNTRY,STOCKIST,CITY,SOCIAL LINK\nFrance,Acme Supply,Paris,https://www.instagram.com/acmesupply/\n", string(data))
}

func TestRowCell(t *testing.T) {
	cell, err := rowCell(2)
	require.NoError(t, err)
	assert.Equal(t, "A2", cell)

	_, err = rowCell(excelize.TotalRows + 1)
	assert.Error(t, err)

	_, err = rowCell(0)
	assert.Error(t, err)
}

func TestXLSXWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockists.xlsx")

	err := (&XLSXWriter{Sheet: "Stockists"}).WriteFile(path, sampleRecords)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Stockists")
	require.NoError(t, err)

	require.Len(t, rows, len(sampleRecords)+1)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"France", "Acme Supply", "Paris", "https://www.instagram.com/acmesupply/"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 3)
	assert.Equal(t, []string{"USA", "Westerly", "Portland, OR"}, rows[2][:3])
	if len(rows[2]) > 3 {
		assert.Empty(t, rows[2][3])
	}
	require.Len(t, rows[3], 4)
	assert.Equal(t, `The "Good" Store`, rows[3][1])
	assert.Equal(t, "https://instagram.com/good", rows[3][3])
}

func TestXLSXWriter_EmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockists.xlsx")

	err := (&XLSXWriter{}).WriteFile(path, []types.StockistRecord{})

	assert.True(t, errors.Is(err, ErrNoRecords))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
