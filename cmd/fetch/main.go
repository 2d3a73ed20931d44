package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"stock_fetcher/internal/app/config"
	"stock_fetcher/internal/app/di"
	"stock_fetcher/internal/feature/prices/adapters"
	pricesusecase "stock_fetcher/internal/feature/prices/usecase"
	sessiondomain "stock_fetcher/internal/feature/session/domain"
	sessionusecase "stock_fetcher/internal/feature/session/usecase"
	"stock_fetcher/internal/platform/checkpoint"
	"stock_fetcher/internal/platform/db"
	platformredis "stock_fetcher/internal/platform/redis"
	"stock_fetcher/internal/version"
)

func main() {
	os.Exit(run(context.Background()))
}

// run performs one fetch pass and returns the process exit code. The
// checkpoint is only saved when the pass ran to completion.
func run(parent context.Context) int {
	// Set up structured logging; the level is raised or lowered once config is loaded.
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Info("env file not found; using system environment variables", "path", envFile)
	}

	slog.Info("starting fetch", "version", version.String())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	level.Set(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	symbols, err := adapters.NewCSVSymbolRepository(cfg.SymbolsFile).ListSymbols(ctx)
	if err != nil {
		slog.Error("failed to load symbols", "path", cfg.SymbolsFile, "error", err)
		return 1
	}
	slog.Info("configuration loaded",
		"symbols", len(symbols),
		"exchange", cfg.Exchange,
		"interval", cfg.Interval,
		"from_date", cfg.FromDate.Format(pricesusecase.DateLayout),
		"output_dir", cfg.OutputDir,
	)

	// Optional backends degrade to CSV-only, uncached runs.
	rdb, err := platformredis.NewRedisClient(ctx)
	if err != nil {
		slog.Warn("continuing without redis cache", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		slog.Warn("continuing without price store mirror", "driver", cfg.DB.Driver, "error", err)
		gdb = nil
	}
	if gdb != nil {
		if sqlDB, err := gdb.DB(); err == nil {
			defer func() { _ = sqlDB.Close() }()
		}
	}

	client := di.NewKiteClient(cfg.Kite)
	sess := di.NewSessionUsecase(client, rdb, sessionusecase.Credentials{
		APIKey:       cfg.Kite.APIKey,
		APISecret:    cfg.Kite.APISecret,
		RequestToken: cfg.RequestToken,
	})
	token, err := sess.Bootstrap(ctx)
	if err != nil {
		slog.Error("failed to establish session", "error", err)
		return 1
	}
	client.SetAccessToken(token)

	uc := di.NewFetchUsecase(
		di.NewMarketRepository(client, rdb),
		di.NewBarRepository(cfg.OutputDir, gdb),
		cfg.OutputDir,
	)
	result, err := uc.Run(ctx, symbols, pricesusecase.Options{
		Exchange: cfg.Exchange,
		Interval: cfg.Interval,
		FromDate: cfg.FromDate,
	})
	if err != nil {
		if errors.Is(err, sessiondomain.ErrAuth) {
			sess.Invalidate(context.WithoutCancel(ctx))
		}
		slog.Error("fetch pass aborted, checkpoint not saved", "error", err)
		return 1
	}

	store := checkpoint.NewEnvStore(cfg.EnvFile)
	if err := store.Save(result.NextFromDate); err != nil {
		slog.Error("failed to save checkpoint", "path", store.Path(), "error", err)
		return 0
	}
	slog.Info("checkpoint saved",
		"path", store.Path(),
		"from_date", result.NextFromDate.Format(pricesusecase.DateLayout),
	)
	return 0
}
