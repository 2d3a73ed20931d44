package config

import (
	"errors"
	"fmt"
	"slices"

	"stock_fetcher/internal/platform/db"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Kite.APIKey == "" {
		return errors.New("API_KEY is required")
	}
	if c.Kite.APISecret == "" {
		return errors.New("API_SECRET is required")
	}
	if c.RequestToken == "" {
		return errors.New("REQUEST_TOKEN is required")
	}

	if !slices.Contains(Intervals, c.Interval) {
		return fmt.Errorf("INTERVAL must be one of %v, got %q", Intervals, c.Interval)
	}
	if c.FromDate.IsZero() {
		return errors.New("FROM_DATE is required")
	}
	if c.Exchange == "" {
		return errors.New("EXCHANGE is required")
	}

	switch c.DB.Driver {
	case "", db.DriverSQLite:
	case db.DriverPostgres:
		if c.DB.Host == "" {
			return errors.New("DB_HOST is required for postgres")
		}
		if c.DB.Name == "" {
			return errors.New("DB_NAME is required for postgres")
		}
	default:
		return fmt.Errorf("PRICE_STORE_DRIVER must be sqlite or postgres, got %q", c.DB.Driver)
	}

	return nil
}
