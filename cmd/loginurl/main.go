package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"stock_fetcher/internal/app/config"
	"stock_fetcher/internal/platform/externalapi/kite"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Info("env file not found; using system environment variables", "path", envFile)
	}

	cfg := kite.LoadConfig()
	if cfg.APIKey == "" {
		slog.Error("API_KEY is required")
		os.Exit(1)
	}

	fmt.Println(kite.NewClient(cfg, nil).LoginURL())
}
