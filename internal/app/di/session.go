package di

import (
	"github.com/redis/go-redis/v9"

	"stock_fetcher/internal/feature/session/usecase"
	"stock_fetcher/internal/platform/cache"
	"stock_fetcher/internal/platform/externalapi/kite"
	"stock_fetcher/internal/platform/session"
)

// NewTokenCache returns a Redis-backed TokenCache, or nil when Redis is not configured.
func NewTokenCache(rdb *redis.Client) usecase.TokenCache {
	if rdb != nil {
		return session.NewTokenRedis(rdb, "kite:access_token")
	}
	return nil
}

// NewSessionUsecase wires the session bootstrap against the Kite client.
func NewSessionUsecase(client *kite.Client, rdb *redis.Client, creds usecase.Credentials) *usecase.SessionUsecase {
	return usecase.NewSessionUsecase(client, NewTokenCache(rdb), creds, cache.TimeUntilNextReset)
}
