package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"volumeProfiler/internal/adapters/logger" // Import the logger package for LogLevel
	"volumeProfiler/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Binance API (optional; only public market-data endpoints are used)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Chart Parameters
	Symbol    string
	ChartTF   string // Chart resolution in platform notation ("1", "60", "1D")
	IsFutures bool

	// Profile Parameters
	RowsLayout     string  // "Number Of Rows" or "Ticks Per Row"
	NumRows        int     // Rows per profile (or ticks per row, per RowsLayout)
	ValueAreaPct   float64 // Value area share, e.g. 0.70 for 70%
	TickSize       float64 // Instrument tick size
	AnchorPeriod   domain.AnchorPeriod
	MaxTotalRows   int // Row budget across all periods
	RowsPerPeriod  int
	LookbackLength int // Bars scanned for the swing high/low anchor

	// Visible Range (unix seconds; zero means "now minus default window")
	RangeFrom int64
	RangeTo   int64

	// Database
	DBPath string

	// Logging
	LogLevel logger.LogLevel
}

// DefaultRangeWindow is the visible range used when RANGE_FROM/RANGE_TO are unset.
const DefaultRangeWindow = 24 * time.Hour

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Binance API (public endpoints work without keys)
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)

	// Chart Parameters
	cfg.Symbol = getEnv("SYMBOL", "ETHUSDT")
	if cfg.Symbol == "" {
		errs = append(errs, "SYMBOL must be set")
	}
	cfg.ChartTF = getEnv("CHART_TIMEFRAME", "60")
	cfg.IsFutures = getEnvAsBool("IS_FUTURES", false)

	// Profile Parameters
	cfg.RowsLayout = getEnv("ROWS_LAYOUT", "Number Of Rows")

	cfg.NumRows, err = getEnvAsIntRequired("NUM_ROWS", 24)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid NUM_ROWS: %v", err))
	} else if cfg.NumRows <= 0 {
		errs = append(errs, "NUM_ROWS must be positive")
	}

	cfg.ValueAreaPct, err = getEnvAsFloatRequired("VALUE_AREA_PCT", 0.70)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid VALUE_AREA_PCT: %v", err))
	} else if cfg.ValueAreaPct <= 0 || cfg.ValueAreaPct > 1.0 {
		errs = append(errs, "VALUE_AREA_PCT must be in (0.0, 1.0]")
	}

	cfg.TickSize, err = getEnvAsFloatRequired("TICK_SIZE", 0.01)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TICK_SIZE: %v", err))
	} else if cfg.TickSize <= 0 {
		errs = append(errs, "TICK_SIZE must be positive")
	}

	cfg.AnchorPeriod = domain.ParseAnchorPeriod(getEnv("ANCHOR_PERIOD", "Auto"))

	cfg.MaxTotalRows = getEnvAsInt("MAX_TOTAL_ROWS", 960)
	if cfg.MaxTotalRows <= 0 {
		errs = append(errs, "MAX_TOTAL_ROWS must be positive")
	}

	cfg.RowsPerPeriod = getEnvAsInt("ROWS_PER_PERIOD", cfg.NumRows)
	if cfg.RowsPerPeriod <= 0 {
		errs = append(errs, "ROWS_PER_PERIOD must be positive")
	}

	cfg.LookbackLength, err = getEnvAsIntRequired("LOOKBACK_LENGTH", 50)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid LOOKBACK_LENGTH: %v", err))
	} else if cfg.LookbackLength <= 0 {
		errs = append(errs, "LOOKBACK_LENGTH must be positive")
	}

	// Visible Range
	cfg.RangeFrom = int64(getEnvAsInt("RANGE_FROM", 0))
	cfg.RangeTo = int64(getEnvAsInt("RANGE_TO", 0))
	if cfg.RangeFrom != 0 && cfg.RangeTo != 0 && cfg.RangeTo < cfg.RangeFrom {
		errs = append(errs, "RANGE_TO must not be before RANGE_FROM")
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/volume_profiler.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// VisibleRange resolves the configured range, defaulting to the trailing
// DefaultRangeWindow ending now.
func (c *Config) VisibleRange(now time.Time) (time.Time, time.Time) {
	if c.RangeFrom != 0 && c.RangeTo != 0 {
		return time.Unix(c.RangeFrom, 0).UTC(), time.Unix(c.RangeTo, 0).UTC()
	}
	return now.Add(-DefaultRangeWindow).UTC(), now.UTC()
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// For non-required fields, default is acceptable.
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
