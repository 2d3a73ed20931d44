// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_fetcher/internal/feature/prices/domain/entity"
	"stock_fetcher/internal/feature/prices/usecase"
)

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// CachingMarketRepository decorates a MarketRepository with a Redis copy of the
// instrument catalog. Historical data always goes to the inner repository.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

// NewCachingMarketRepository decorates a MarketRepository with catalog caching.
// If ttl is nil the catalog lives until the next daily reset. If namespace is
// empty, it uses "instruments".
func NewCachingMarketRepository(rdb *redis.Client, ttl func() time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl == nil {
		ttl = TimeUntilNextReset
	}
	if namespace == "" {
		namespace = "instruments"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Instruments returns the catalog, checking the cache first then falling back to the provider.
func (c *CachingMarketRepository) Instruments(ctx context.Context) ([]entity.Instrument, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Instruments(ctx)
	}

	key := c.cacheKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Instrument
		if err := json.Unmarshal(b, &out); err == nil {
			slog.Debug("instrument catalog served from cache", "instruments", len(out))
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to provider
	out, err := c.inner.Instruments(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if ttl := c.ttl(); ttl > 0 && len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
				slog.Warn("failed to cache instrument catalog", "error", err)
			}
		}
	}

	return out, nil
}

// HistoricalData delegates to the inner repository.
func (c *CachingMarketRepository) HistoricalData(ctx context.Context, instrumentToken int64, from, to time.Time, interval string) ([]entity.PriceBar, error) {
	return c.inner.HistoricalData(ctx, instrumentToken, from, to, interval)
}

// cacheKey returns the key of the full catalog.
func (c *CachingMarketRepository) cacheKey() string {
	return c.namespace + ":catalog"
}
