// Package report prints a human-readable summary of extracted stockists.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"monitaly-stockists/internal/types"
)

// CountryCount is the number of stockists found for one country
type CountryCount struct {
	Country string
	Count   int
}

// Summary aggregates records by country
type Summary struct {
	Total     int
	ByCountry []CountryCount
}

// Summarize counts records per country, sorted by country name
func Summarize(records []types.StockistRecord) Summary {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Country]++
	}

	byCountry := make([]CountryCount, 0, len(counts))
	for country, count := range counts {
		byCountry = append(byCountry, CountryCount{Country: country, Count: count})
	}
	sort.Slice(byCountry, func(i, j int) bool {
		return byCountry[i].Country < byCountry[j].Country
	})

	return Summary{
		Total:     len(records),
		ByCountry: byCountry,
	}
}

// Print writes the per-country counts and the first sampleSize records to w
func Print(w io.Writer, records []types.StockistRecord, sampleSize int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "\nNo stockists found!")
		return
	}

	summary := Summarize(records)
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(w, "\n%s\nSUMMARY: Found %d stockists\n%s\n", rule, summary.Total, rule)

	fmt.Fprintln(w, "\nStockists by country:")
	counts := newTable(w)
	counts.AppendHeader(table.Row{"Country", "Stockists"})
	for _, c := range summary.ByCountry {
		counts.AppendRow(table.Row{c.Country, c.Count})
	}
	counts.AppendFooter(table.Row{"Total", summary.Total})
	counts.Render()

	if sampleSize <= 0 {
		return
	}
	if sampleSize > len(records) {
		sampleSize = len(records)
	}

	fmt.Fprintf(w, "\n%s\nSample entries:\n%s\n", rule, rule)
	sample := newTable(w)
	sample.AppendHeader(table.Row{"#", "Country", "Stockist", "City", "Social"})
	for i, r := range records[:sampleSize] {
		sample.AppendRow(table.Row{i + 1, r.Country, r.StockistName, r.City, r.SocialLink})
	}
	sample.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}
