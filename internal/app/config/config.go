// Package config assembles the settings of the fetch command from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"stock_fetcher/internal/feature/prices/usecase"
	"stock_fetcher/internal/platform/db"
	"stock_fetcher/internal/platform/externalapi/kite"
)

const (
	DefaultInterval    = "day"
	DefaultFromDate    = "2023-01-01"
	DefaultExchange    = "NSE"
	DefaultSymbolsFile = "symbols.csv"
	DefaultOutputDir   = "data"
	DefaultEnvFile     = ".env"
)

// Intervals accepted by the historical data endpoint.
var Intervals = []string{
	"minute", "3minute", "5minute", "10minute", "15minute", "30minute", "60minute", "day",
}

// Config holds everything one fetch run needs.
type Config struct {
	Kite         kite.Config
	DB           db.Config
	RequestToken string
	Interval     string
	FromDate     time.Time
	Exchange     string
	SymbolsFile  string
	OutputDir    string
	EnvFile      string
	LogLevel     slog.Level
}

// Load reads the configuration from environment variables, applies defaults
// and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Kite:         kite.LoadConfig(),
		DB:           db.LoadConfigFromEnv(),
		RequestToken: os.Getenv("REQUEST_TOKEN"),
		Interval:     getenv("INTERVAL", DefaultInterval),
		Exchange:     getenv("EXCHANGE", DefaultExchange),
		SymbolsFile:  getenv("SYMBOLS_FILE", DefaultSymbolsFile),
		OutputDir:    getenv("OUTPUT_DIR", DefaultOutputDir),
		EnvFile:      getenv("ENV_FILE", DefaultEnvFile),
	}

	raw := getenv("FROM_DATE", DefaultFromDate)
	from, err := usecase.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("FROM_DATE must be YYYY-MM-DD, got %q", raw)
	}
	cfg.FromDate = from

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
