package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Transaction source
	DataBackend   string // memory, excel, sheets
	DateLayout    string // dayfirst, iso
	ExcelFilePath string

	// Google Sheets source
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string

	// User settings (currencies and stocks to watch)
	UserSettingsPath string

	// Market data providers
	ExchangeRateAPIURL string
	AlphaVantageAPIURL string
	AlphaVantageAPIKey string
	BaseCurrency       string
	MarketCacheTTL     time.Duration

	// Cashback analysis
	CashbackMode string // recorded, flat
	CashbackRate string // decimal, used in flat mode

	// Report archive and export
	SQLiteDBPath string
	ReportsDir   string

	// AMQP export queue
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		DataBackend:   getEnv("DATA_BACKEND", "memory"),
		DateLayout:    getEnv("DATE_LAYOUT", "dayfirst"),
		ExcelFilePath: getEnv("EXCEL_FILE_PATH", "./data/operations.xlsx"),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:       getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),

		UserSettingsPath: getEnv("USER_SETTINGS_PATH", "./data/user_settings.json"),

		ExchangeRateAPIURL: getEnv("EXCHANGE_RATE_API_URL", "https://open.er-api.com/v6/latest"),
		AlphaVantageAPIURL: getEnv("ALPHA_VANTAGE_API_URL", "https://www.alphavantage.co/query"),
		AlphaVantageAPIKey: getEnv("ALPHA_VANTAGE_API_KEY", ""),
		BaseCurrency:       getEnv("BASE_CURRENCY", "USD"),
		MarketCacheTTL:     getEnvDuration("MARKET_CACHE_TTL", 15*time.Minute),

		CashbackMode: getEnv("CASHBACK_MODE", "recorded"),
		CashbackRate: getEnv("CASHBACK_RATE", "0.01"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finlens.db"),
		ReportsDir:   getEnv("REPORTS_DIR", "./reports"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finlens"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_export"),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !oneOf(c.DataBackend, "memory", "excel", "sheets") {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [memory excel sheets]", c.DataBackend))
	}
	if !oneOf(c.DateLayout, "dayfirst", "iso") {
		problems = append(problems, fmt.Sprintf("invalid date layout '%s': must be 'dayfirst' or 'iso'", c.DateLayout))
	}
	if !oneOf(c.CashbackMode, "recorded", "flat") {
		problems = append(problems, fmt.Sprintf("invalid cashback mode '%s': must be 'recorded' or 'flat'", c.CashbackMode))
	}
	if rate, err := strconv.ParseFloat(c.CashbackRate, 64); err != nil {
		problems = append(problems, fmt.Sprintf("invalid cashback rate '%s': must be a number", c.CashbackRate))
	} else if rate <= 0 || rate >= 1 {
		problems = append(problems, fmt.Sprintf("invalid cashback rate %v: must be between 0 and 1 exclusive", rate))
	}

	if c.DataBackend == "excel" && c.ExcelFilePath == "" {
		problems = append(problems, "Excel file path cannot be empty when using excel backend")
	}

	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			problems = append(problems, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			problems = append(problems, "Google Sheet name is required when using sheets backend")
		}
		if c.GoogleCredentialsFile == "" && c.GoogleCredentialsJSON == "" {
			problems = append(problems, "either GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON must be provided for sheets backend")
		}
	}

	if c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty")
	} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				problems = append(problems, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	}

	if c.MarketCacheTTL < time.Second || c.MarketCacheTTL > 24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid market cache TTL %v: must be between 1s and 24h", c.MarketCacheTTL))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
