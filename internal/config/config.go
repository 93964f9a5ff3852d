package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Run modes select which holdings sources are tried, and in what order.
const (
	// ModeScrape scrapes shares outstanding from the product page, then
	// fetches the holdings CSV with a local-file fallback.
	ModeScrape = "scrape"
	// ModeCSV fetches the holdings CSV (local-file fallback) and uses the
	// configured shares outstanding.
	ModeCSV = "csv"
	// ModeLocal reads the local holdings CSV directly.
	ModeLocal = "local"
	// ModeXLSX reads holdings and shares outstanding from a modern workbook.
	ModeXLSX = "xlsx"
	// ModeXLS reads the same data from a legacy workbook.
	ModeXLS = "xls"
)

// Config holds all configuration for the NAV estimator.
type Config struct {
	// Mode selects the holdings ingestion path.
	Mode string `mapstructure:"mode"`

	// Publisher endpoints and local inputs.
	ProductPageURL       string `mapstructure:"product_page_url"`
	HoldingsCSVURL       string `mapstructure:"holdings_csv_url"`
	FallbackHoldingsFile string `mapstructure:"fallback_holdings_file"`
	HoldingsXLSXFile     string `mapstructure:"holdings_xlsx_file"`
	HoldingsXLSFile      string `mapstructure:"holdings_xls_file"`
	HoldingsSheetName    string `mapstructure:"holdings_sheet_name"`

	// SharesOutstanding is the fixed divisor used by the csv and local modes,
	// which have no scraped or extracted figure of their own.
	SharesOutstanding float64 `mapstructure:"shares_outstanding"`

	// Status artifacts.
	ResultFile string `mapstructure:"result_file"`
	SourceFile string `mapstructure:"source_file"`

	// Market data endpoint.
	QuoteBaseURL string `mapstructure:"quote_base_url"`

	// Network behavior.
	UserAgent          string `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
	LookupIntervalMS   int    `mapstructure:"lookup_interval_ms"`

	// Structural assumptions about the publisher's formats. Kept as
	// configuration so format drift is a one-line fix.
	CSVMetadataLines int `mapstructure:"csv_metadata_lines"`
	SharesCellRow    int `mapstructure:"shares_cell_row"`
	SharesCellCol    int `mapstructure:"shares_cell_col"`
	TableHeaderRow   int `mapstructure:"table_header_row"`
}

// HTTPTimeout returns the per-request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// LookupInterval returns the pacing delay between price/FX lookups.
func (c *Config) LookupInterval() time.Duration {
	return time.Duration(c.LookupIntervalMS) * time.Millisecond
}

// Load reads configuration from environment variables (prefixed NAV_), an
// optional config file, and the given flag set. Flags take precedence over
// environment variables, which take precedence over the config file.
//
// Expected environment variables (all optional):
//   - NAV_MODE
//   - NAV_PRODUCT_PAGE_URL, NAV_HOLDINGS_CSV_URL
//   - NAV_FALLBACK_HOLDINGS_FILE, NAV_HOLDINGS_XLSX_FILE, NAV_HOLDINGS_XLS_FILE
//   - NAV_SHARES_OUTSTANDING (required for csv and local modes)
//   - NAV_RESULT_FILE, NAV_SOURCE_FILE
//   - NAV_QUOTE_BASE_URL
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("NAV")
	v.AutomaticEnv()

	// Defaults target the iShares ISUS fund.
	v.SetDefault("mode", ModeScrape)
	v.SetDefault("product_page_url", "https://www.ishares.com/uk/individual/en/products/251393/ishares-msci-usa-islamic-ucits-etf")
	v.SetDefault("holdings_csv_url", "https://www.ishares.com/uk/individual/en/products/251393/ishares-msci-usa-islamic-ucits-etf/1506575576011.ajax?fileType=csv&fileName=ISUS_holdings&dataType=fund")
	v.SetDefault("fallback_holdings_file", "ISUS_holdings.csv")
	v.SetDefault("holdings_xlsx_file", "ISUS_holdings.xlsx")
	v.SetDefault("holdings_xls_file", "ISUS_holdings.xls")
	v.SetDefault("holdings_sheet_name", "Holdings")
	v.SetDefault("shares_outstanding", 0.0)
	v.SetDefault("result_file", "nav_result.txt")
	v.SetDefault("source_file", "source_used.txt")
	v.SetDefault("quote_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("lookup_interval_ms", 200)

	// The publisher's CSV always prepends exactly 2 metadata lines, the
	// workbook carries shares outstanding in cell C6 and the table header
	// on row 8 (both 0-indexed below).
	v.SetDefault("csv_metadata_lines", 2)
	v.SetDefault("shares_cell_row", 5)
	v.SetDefault("shares_cell_col", 2)
	v.SetDefault("table_header_row", 7)

	// Optionally read from a config file if one exists.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.isdu-etf-nav")
	_ = v.ReadInConfig()

	v.BindEnv("mode", "NAV_MODE")
	v.BindEnv("product_page_url", "NAV_PRODUCT_PAGE_URL")
	v.BindEnv("holdings_csv_url", "NAV_HOLDINGS_CSV_URL")
	v.BindEnv("fallback_holdings_file", "NAV_FALLBACK_HOLDINGS_FILE")
	v.BindEnv("holdings_xlsx_file", "NAV_HOLDINGS_XLSX_FILE")
	v.BindEnv("holdings_xls_file", "NAV_HOLDINGS_XLS_FILE")
	v.BindEnv("holdings_sheet_name", "NAV_HOLDINGS_SHEET_NAME")
	v.BindEnv("shares_outstanding", "NAV_SHARES_OUTSTANDING")
	v.BindEnv("result_file", "NAV_RESULT_FILE")
	v.BindEnv("source_file", "NAV_SOURCE_FILE")
	v.BindEnv("quote_base_url", "NAV_QUOTE_BASE_URL")
	v.BindEnv("user_agent", "NAV_USER_AGENT")
	v.BindEnv("http_timeout_seconds", "NAV_HTTP_TIMEOUT_SECONDS")
	v.BindEnv("lookup_interval_ms", "NAV_LOOKUP_INTERVAL_MS")

	if flags != nil {
		if f := flags.Lookup("mode"); f != nil && f.Changed {
			v.Set("mode", f.Value.String())
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeScrape, ModeCSV, ModeLocal, ModeXLSX, ModeXLS:
	default:
		return fmt.Errorf("unknown mode %q (expected one of %s)", c.Mode,
			strings.Join([]string{ModeScrape, ModeCSV, ModeLocal, ModeXLSX, ModeXLS}, ", "))
	}

	// Only scrape and spreadsheet modes carry their own shares outstanding.
	if (c.Mode == ModeCSV || c.Mode == ModeLocal) && c.SharesOutstanding <= 0 {
		return fmt.Errorf("mode %q requires NAV_SHARES_OUTSTANDING > 0, got %v", c.Mode, c.SharesOutstanding)
	}

	if c.LookupIntervalMS < 0 || c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid network settings: timeout %ds, lookup interval %dms", c.HTTPTimeoutSeconds, c.LookupIntervalMS)
	}
	return nil
}
