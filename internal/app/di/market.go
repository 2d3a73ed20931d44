// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"stock_fetcher/internal/feature/prices/usecase"
	"stock_fetcher/internal/platform/cache"
	"stock_fetcher/internal/platform/externalapi/kite"
	infrahttp "stock_fetcher/internal/platform/http"
)

// NewKiteClient creates a fully configured Kite client with HTTP client.
func NewKiteClient(cfg kite.Config) *kite.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return kite.NewClient(cfg, httpClient)
}

// NewMarketRepository returns the Kite client, with the instrument catalog
// cached in Redis when rdb is available.
func NewMarketRepository(client *kite.Client, rdb *redis.Client) usecase.MarketRepository {
	if rdb != nil {
		return cache.NewCachingMarketRepository(rdb, cache.TimeUntilNextReset, client, "kite:instruments")
	}
	return client
}
