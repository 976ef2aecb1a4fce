package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"monitaly-stockists/extractor"
	"monitaly-stockists/internal/types"
	"monitaly-stockists/output"
	"monitaly-stockists/report"
	"monitaly-stockists/utils"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	defaults := types.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "monitaly-stockists",
		Short: "Export the Monitaly stockists directory to CSV",
		Long: `Fetches the Monitaly stockists page, groups the listed retailers by
country and writes them to a CSV (or XLSX) file.

Examples:
  # Scrape the default page into monitaly_stockists.csv
  monitaly-stockists

  # Write an Excel workbook instead
  monitaly-stockists -o stockists.xlsx --format xlsx

  # Render the page in headless Chrome first
  monitaly-stockists --browser`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfigFile(v); err != nil {
				return err
			}

			config, err := configFromViper(v)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			return run(ctx, config, logger, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default ./.monitaly-stockists.yaml)")
	flags.String("url", defaults.URL, "Stockists page URL")
	flags.StringP("output", "o", defaults.OutputPath, "Output file path")
	flags.String("format", defaults.Format, "Output format (csv, xlsx)")
	flags.Bool("browser", defaults.UseHeadlessBrowser, "Render the page in a headless browser before parsing")
	flags.Duration("timeout", defaults.Timeout, "Request timeout")
	flags.StringSlice("countries", defaults.Countries, "Comma-separated country headers that start a section")
	flags.String("container", defaults.ContainerSelector, "CSS selector of the content container")
	flags.Int("sample", defaults.SampleSize, "Number of sample entries to print")
	flags.String("user-agent", defaults.UserAgent, "User-Agent header sent with the request")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("STOCKISTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

// readConfigFile loads the optional YAML config. A missing default file is not an error.
func readConfigFile(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}

	v.AddConfigPath(".")
	v.SetConfigName(".monitaly-stockists")
	v.SetConfigType("yaml")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func configFromViper(v *viper.Viper) (*types.Config, error) {
	config := &types.Config{
		URL:                v.GetString("url"),
		UserAgent:          v.GetString("user-agent"),
		Timeout:            v.GetDuration("timeout"),
		UseHeadlessBrowser: v.GetBool("browser"),
		ContainerSelector:  v.GetString("container"),
		Countries:          stringList(v.Get("countries")),
		OutputPath:         v.GetString("output"),
		Format:             strings.ToLower(v.GetString("format")),
		SampleSize:         v.GetInt("sample"),
	}

	if config.URL == "" {
		return nil, errors.New("url must not be empty")
	}
	if config.OutputPath == "" {
		return nil, errors.New("output path must not be empty")
	}
	if len(config.Countries) == 0 {
		return nil, errors.New("at least one country is required")
	}
	if _, err := output.NewWriter(output.Format(config.Format)); err != nil {
		return nil, err
	}

	return config, nil
}

// stringList normalizes a list value coming from a flag, config file or a
// comma-separated environment variable. Country names may contain spaces.
func stringList(value interface{}) []string {
	var raw []string
	switch val := value.(type) {
	case []string:
		raw = val
	case []interface{}:
		for _, item := range val {
			raw = append(raw, fmt.Sprint(item))
		}
	case string:
		raw = strings.Split(val, ",")
	}

	var list []string
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// run fetches, extracts, reports and writes. Fetch and write failures are
// logged and end the run without output; they are not returned. A panic is
// logged with its stack and also ends the run.
func run(ctx context.Context, config *types.Config, logger *logrus.Logger, out io.Writer) error {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("stack", string(debug.Stack())).Errorf("An error occurred: %v", r)
		}
	}()

	fmt.Fprintf(out, "Monitaly Stockists Scraper\n%s\n", strings.Repeat("=", 80))

	storeExtractor := extractor.NewMonitalyExtractor(config, logger)
	defer storeExtractor.Close()

	records, err := storeExtractor.ExtractToFile(ctx, config.OutputPath, output.Format(config.Format))

	var fetchErr *utils.FetchError
	switch {
	case errors.As(err, &fetchErr):
		logger.Errorf("Error fetching the website: %v", err)
		logger.Error("Please check your internet connection and try again.")
		return nil
	case err != nil && !errors.Is(err, output.ErrNoRecords):
		report.Print(out, records, config.SampleSize)
		logger.WithField("error_type", fmt.Sprintf("%T", errors.Unwrap(err))).Errorf("An error occurred: %+v", err)
		return nil
	}

	report.Print(out, records, config.SampleSize)

	if len(records) == 0 {
		logger.Warn("No stockists were found. The website structure may have changed.")
		logger.Warn("Please check the website manually or update the scraper.")
		return nil
	}

	logger.Infof("Successfully saved to %s", config.OutputPath)
	fmt.Fprintf(out, "\nData has been saved to: %s\n", config.OutputPath)
	return nil
}
