// Package usecase implements the incremental fetch-and-merge engine for the prices feature.
package usecase

import (
	"context"
	"time"

	"stock_fetcher/internal/feature/prices/domain/entity"
)

// MarketRepository retrieves the instrument catalog and historical bars from the brokerage.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// Instruments returns the provider's full instrument catalog across all exchanges.
	Instruments(ctx context.Context) ([]entity.Instrument, error)

	// HistoricalData returns bars for one instrument within [from, to] at the given interval.
	// Returned bars carry no symbol; the caller stamps it.
	HistoricalData(ctx context.Context, instrumentToken int64, from, to time.Time, interval string) ([]entity.PriceBar, error)
}

// BarRepository persists one table of bars per symbol.
type BarRepository interface {
	// Load returns the persisted bars for symbol. A symbol with no table yet yields no bars and no error.
	Load(ctx context.Context, symbol string) ([]entity.PriceBar, error)

	// Save replaces the symbol's table with bars.
	Save(ctx context.Context, symbol string, bars []entity.PriceBar) error
}

// ManifestWriter records the list of configured symbols for a run.
type ManifestWriter interface {
	WriteManifest(ctx context.Context, symbols []string) error
}
