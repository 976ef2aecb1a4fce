package types

import "time"

// DefaultStockistsURL is the Monitaly stockists directory page
const DefaultStockistsURL = "https://www.monitaly.com/stockists"

// DefaultOutputPath is the file written when no output path is given
const DefaultOutputPath = "monitaly_stockists.csv"

// DefaultContainerSelector marks the Squarespace block that wraps the directory
const DefaultContainerSelector = "div.sqs-block-content"

// DefaultCountries lists the section headers used on the stockists page.
// A block whose trimmed text equals one of these starts a new country section.
var DefaultCountries = []string{
	"Australia",
	"Belgium",
	"Canada",
	"France",
	"Germany",
	"Hong Kong",
	"Italy",
	"Japan",
	"Korea",
	"Mexico",
	"Netherlands",
	"Switzerland",
	"Taiwan",
	"UK",
	"USA",
}

// StockistRecord represents a single retailer listed on the stockists page
type StockistRecord struct {
	Country      string `json:"country"`
	StockistName string `json:"stockist"`
	City         string `json:"city"`
	SocialLink   string `json:"social_link"`
}

// Config holds the configuration for the scraper
type Config struct {
	URL                string
	UserAgent          string
	Timeout            time.Duration
	UseHeadlessBrowser bool
	ContainerSelector  string
	Countries          []string
	OutputPath         string
	Format             string
	SampleSize         int
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	countries := make([]string, len(DefaultCountries))
	copy(countries, DefaultCountries)

	return &Config{
		URL:                DefaultStockistsURL,
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		Timeout:            30 * time.Second,
		UseHeadlessBrowser: false,
		ContainerSelector:  DefaultContainerSelector,
		Countries:          countries,
		OutputPath:         DefaultOutputPath,
		Format:             "csv",
		SampleSize:         5,
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
