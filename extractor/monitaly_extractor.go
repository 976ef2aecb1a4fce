package extractor

import (
	"context"
	"fmt"
	"time"

	"monitaly-stockists/adapters"
	"monitaly-stockists/internal/types"
	"monitaly-stockists/output"
)

// MonitalyExtractor runs the fetch, parse and extract steps for the Monitaly stockists page
type MonitalyExtractor struct {
	adapter *adapters.MonitalyAdapter
	logger  types.Logger
}

// NewMonitalyExtractor creates a new Monitaly extractor
func NewMonitalyExtractor(config *types.Config, logger types.Logger) *MonitalyExtractor {
	return &MonitalyExtractor{
		adapter: adapters.NewMonitalyAdapter(config, logger),
		logger:  logger,
	}
}

// ExtractAll fetches the stockists page and returns every stockist found on it
func (m *MonitalyExtractor) ExtractAll(ctx context.Context) ([]types.StockistRecord, error) {
	startTime := time.Now()
	m.logger.Infof("Starting %s extraction", m.adapter.GetStoreName())

	doc, err := m.adapter.FetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	records := m.adapter.ExtractStockists(doc)

	m.logger.Infof("Extraction completed in %v, found %d stockists", time.Since(startTime), len(records))
	return records, nil
}

// ExtractToFile extracts all stockists and writes them to filename in the given format.
// It returns output.ErrNoRecords when the page yielded nothing; no file is written then.
func (m *MonitalyExtractor) ExtractToFile(ctx context.Context, filename string, format output.Format) ([]types.StockistRecord, error) {
	writer, err := output.NewWriter(format)
	if err != nil {
		return nil, err
	}

	records, err := m.ExtractAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := writer.WriteFile(filename, records); err != nil {
		return records, fmt.Errorf("failed to write results to file: %w", err)
	}

	m.logger.Infof("Saved %d stockists to %s", len(records), filename)
	return records, nil
}

// Close cleans up resources
func (m *MonitalyExtractor) Close() {
	if m.adapter != nil {
		m.adapter.Close()
	}
}
