package adapters

import (
	"context"
	"fmt"
	"strings"

	"monitaly-stockists/internal/types"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MonitalyAdapter extracts the stockist directory from monitaly.com.
//
// The page is a flat run of headings and paragraphs inside a Squarespace
// content block. Country names appear as standalone blocks; every block
// after one of them, until the next, belongs to that country. A stockist
// block reads "Name, City, @handle" where at least one part is a link.
type MonitalyAdapter struct {
	*BaseAdapter
	countries map[string]struct{}
}

// NewMonitalyAdapter creates a new Monitaly adapter
func NewMonitalyAdapter(config *types.Config, logger types.Logger) *MonitalyAdapter {
	countries := config.Countries
	if len(countries) == 0 {
		countries = types.DefaultCountries
	}

	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[c] = struct{}{}
	}

	return &MonitalyAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
		countries:   set,
	}
}

// GetStoreName returns the store name
func (m *MonitalyAdapter) GetStoreName() string {
	return "monitaly.com"
}

// FetchDocument downloads and parses the stockists page
func (m *MonitalyAdapter) FetchDocument(ctx context.Context) (*goquery.Document, error) {
	content, err := m.GetPageContent(ctx, m.config.URL)
	if err != nil {
		return nil, err
	}

	doc, err := m.ParseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stockists page: %w", err)
	}

	return doc, nil
}

// ExtractStockistsFromHTML parses raw HTML and extracts the stockist records
func (m *MonitalyAdapter) ExtractStockistsFromHTML(content string) ([]types.StockistRecord, error) {
	doc, err := m.ParseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stockists page: %w", err)
	}
	return m.ExtractStockists(doc), nil
}

// ExtractStockists walks the h2/h3/p blocks of the content container in
// document order and returns one record per block that looks like a stockist.
// Blocks that don't fit are skipped; an empty result is not an error.
func (m *MonitalyAdapter) ExtractStockists(doc *goquery.Document) []types.StockistRecord {
	var records []types.StockistRecord
	currentCountry := ""

	m.findContentContainer(doc).Find("h2, h3, p").Each(func(i int, block *goquery.Selection) {
		text := strings.TrimSpace(block.Text())

		if m.IsCountry(text) {
			currentCountry = text
			m.logger.Infof("Processing country: %s", currentCountry)
			return
		}

		// Anything above the first country header is page chrome
		if currentCountry == "" {
			return
		}

		record, ok := m.parseStockistBlock(block, currentCountry)
		if !ok {
			return
		}

		records = append(records, record)
		m.logger.Debugf("  Added: %s - %s", record.StockistName, record.City)
	})

	return records
}

// IsCountry reports whether text is one of the configured country headers
func (m *MonitalyAdapter) IsCountry(text string) bool {
	_, ok := m.countries[text]
	return ok
}

// findContentContainer returns the first element matching the container
// selector. The Squarespace class name is not stable, so it falls back to
// <body>, and then to the whole document.
func (m *MonitalyAdapter) findContentContainer(doc *goquery.Document) *goquery.Selection {
	selector := m.config.ContainerSelector
	if selector == "" {
		selector = types.DefaultContainerSelector
	}

	if container := doc.Find(selector).First(); container.Length() > 0 {
		return container
	}

	m.logger.Debugf("Container %q not found, falling back to body", selector)
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}

	return doc.Selection
}

// parseStockistBlock pulls name, city and social link out of a single block.
// The first text fragment is the name and the second is the city; anything
// after that is ignored.
func (m *MonitalyAdapter) parseStockistBlock(block *goquery.Selection, country string) (types.StockistRecord, bool) {
	links := block.Find("a")
	if links.Length() == 0 {
		return types.StockistRecord{}, false
	}

	fragments := textFragments(block)
	if len(fragments) < 2 {
		return types.StockistRecord{}, false
	}

	name := fragments[0]
	city := fragments[1]
	if name == "" || city == "" {
		return types.StockistRecord{}, false
	}

	return types.StockistRecord{
		Country:      country,
		StockistName: name,
		City:         city,
		SocialLink:   resolveSocialLink(links),
	}, true
}

// resolveSocialLink returns the Instagram URL for the first link whose text
// starts with "@". Hrefs already pointing at instagram.com are kept as is,
// otherwise the URL is built from the handle.
func resolveSocialLink(links *goquery.Selection) string {
	socialLink := ""

	links.EachWithBreak(func(i int, link *goquery.Selection) bool {
		linkText := strings.TrimSpace(link.Text())
		if !strings.HasPrefix(linkText, "@") {
			return true
		}

		href, _ := link.Attr("href")
		if strings.Contains(href, "instagram.com") {
			socialLink = href
		} else {
			handle := strings.TrimSpace(strings.TrimPrefix(linkText, "@"))
			socialLink = fmt.Sprintf("https://www.instagram.com/%s/", handle)
		}
		return false
	})

	return socialLink
}

// textFragments collects the trimmed, non-empty text nodes under the
// selection in document order. Script and style contents are skipped.
func textFragments(s *goquery.Selection) []string {
	var fragments []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				fragments = append(fragments, text)
			}
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range s.Nodes {
		walk(n)
	}

	return fragments
}
