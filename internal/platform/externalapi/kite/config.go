// Package kite adapts the Kite Connect SDK to the prices and session usecases.
package kite

import (
	"log/slog"
	"os"
	"time"
)

const (
	DefaultBaseURL = "https://api.kite.trade"
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the Kite Connect API client.
type Config struct {
	APIKey    string        // App API key, sent with every authenticated request
	APISecret string        // App secret, only used to sign the session exchange
	BaseURL   string        // Base URL for the API (e.g., "https://api.kite.trade")
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads Kite Connect configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:    os.Getenv("API_KEY"),
		APISecret: os.Getenv("API_SECRET"),
		BaseURL:   os.Getenv("KITE_BASE_URL"),
		Timeout:   DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if v := os.Getenv("KITE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid KITE_TIMEOUT, using default", "value", v, "default", DefaultTimeout)
		} else {
			cfg.Timeout = d
		}
	}
	return cfg
}
