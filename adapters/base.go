package adapters

import (
	"context"
	"strings"

	"monitaly-stockists/internal/types"
	"monitaly-stockists/utils"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides the fetch and parse plumbing shared by site adapters.
// Site-specific adapters embed it and add their own extraction logic.
type BaseAdapter struct {
	config        *types.Config        // URL, user agent, timeout, browser mode
	logger        types.Logger         // Structured logging interface
	httpClient    *utils.HTTPClient    // HTTP client for static pages
	browserClient *utils.BrowserClient // Headless browser client for rendered pages
}

// NewBaseAdapter creates a new base adapter. The browser client is only
// created when UseHeadlessBrowser is set.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	adapter := &BaseAdapter{
		config:     config,
		logger:     logger,
		httpClient: utils.NewHTTPClient(config, logger),
	}
	if config.UseHeadlessBrowser {
		adapter.browserClient = utils.NewBrowserClient(config, logger)
	}
	return adapter
}

// GetPageContent retrieves the HTML content of a page using either the HTTP client or the headless browser.
// The choice is determined by the UseHeadlessBrowser configuration.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	if b.config.UseHeadlessBrowser {
		if b.browserClient == nil {
			b.browserClient = utils.NewBrowserClient(b.config, b.logger)
		}
		return b.browserClient.GetPageContent(ctx, url)
	}

	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}
