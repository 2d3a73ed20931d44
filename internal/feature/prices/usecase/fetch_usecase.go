package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"stock_fetcher/internal/feature/prices/domain"
	"stock_fetcher/internal/feature/prices/domain/entity"
	sessiondomain "stock_fetcher/internal/feature/session/domain"
)

// DefaultInterval is the bar granularity used when none is configured.
const DefaultInterval = "day"

// Options configures one pass of the engine. FromDate is the checkpoint the
// caller loaded; the engine never persists it.
type Options struct {
	Exchange string
	Interval string
	FromDate time.Time
}

// RunResult reports the outcome of a pass. NextFromDate is the checkpoint the
// caller should store for the following run.
type RunResult struct {
	ToDate       time.Time
	NextFromDate time.Time
	Updated      []string
	Failed       []string
}

// FetchUsecase fetches historical bars symbol by symbol and merges them into
// the persisted per-symbol tables.
type FetchUsecase struct {
	market   MarketRepository
	bars     BarRepository
	manifest ManifestWriter
	now      func() time.Time
}

// NewFetchUsecase creates a new FetchUsecase.
func NewFetchUsecase(market MarketRepository, bars BarRepository, manifest ManifestWriter) *FetchUsecase {
	return &FetchUsecase{
		market:   market,
		bars:     bars,
		manifest: manifest,
		now:      time.Now,
	}
}

// BuildIndex fetches the instrument catalog and keeps the symbols listed on exchange.
func (u *FetchUsecase) BuildIndex(ctx context.Context, exchange string) (entity.InstrumentIndex, error) {
	instruments, err := u.market.Instruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalog, err)
	}

	index := make(entity.InstrumentIndex)
	for _, in := range instruments {
		if in.Exchange == exchange {
			index[in.TradingSymbol] = in.InstrumentToken
		}
	}
	slog.Info("instrument index built", "exchange", exchange, "instruments", len(index))
	return index, nil
}

// FetchSymbol requests the bars of symbol within window, ascending by date.
func (u *FetchUsecase) FetchSymbol(ctx context.Context, index entity.InstrumentIndex, symbol string, window Window, interval string) ([]entity.PriceBar, error) {
	token, ok := index.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInstrumentNotFound, symbol)
	}

	bars, err := u.market.HistoricalData(ctx, token, window.From, window.To, interval)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetch, symbol, err)
	}

	for i := range bars {
		bars[i].Symbol = symbol
	}
	slices.SortStableFunc(bars, func(a, b entity.PriceBar) int {
		return a.Date.Compare(b.Date)
	})
	return bars, nil
}

// ingestOne fetches one symbol and merges the result into its persisted table.
// The table is left untouched unless the fetch returned at least one bar.
func (u *FetchUsecase) ingestOne(ctx context.Context, index entity.InstrumentIndex, symbol string, window Window, interval string) (int, error) {
	fresh, err := u.FetchSymbol(ctx, index, symbol, window, interval)
	if err != nil {
		return 0, err
	}
	if len(fresh) == 0 {
		slog.Debug("no new bars", "symbol", symbol)
		return 0, nil
	}

	existing, err := u.bars.Load(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("%w: load %s: %w", domain.ErrPersist, symbol, err)
	}

	merged := Merge(existing, fresh)
	if err := u.bars.Save(ctx, symbol, merged); err != nil {
		return 0, fmt.Errorf("%w: save %s: %w", domain.ErrPersist, symbol, err)
	}
	return len(fresh), nil
}

// Run performs one full pass over symbols: index, per-symbol fetch and merge,
// manifest, and the next checkpoint.
//
// A catalog failure, a rejected session (sessiondomain.ErrAuth) and
// cancellation of ctx abort the pass: no manifest is written and no checkpoint
// is returned. Other per-symbol failures and a manifest failure are logged and
// the pass carries on; the checkpoint advances to the day after ToDate.
func (u *FetchUsecase) Run(ctx context.Context, symbols []string, opts Options) (RunResult, error) {
	interval := opts.Interval
	if interval == "" {
		interval = DefaultInterval
	}

	index, err := u.BuildIndex(ctx, opts.Exchange)
	if err != nil {
		slog.Error("failed to build instrument index", "error", err)
		return RunResult{}, err
	}

	toDate := Yesterday(u.now())
	window := Window{From: DateOf(opts.FromDate), To: toDate}
	result := RunResult{
		ToDate:       toDate,
		NextFromDate: toDate.AddDate(0, 0, 1),
	}

	if window.Empty() {
		slog.Info("fetch window is empty, skipping fetch",
			"from", window.From.Format(DateLayout),
			"to", window.To.Format(DateLayout),
		)
	} else {
		slog.Info("fetching historical data",
			"symbols", len(symbols),
			"from", window.From.Format(DateLayout),
			"to", window.To.Format(DateLayout),
			"interval", interval,
		)
		for _, s := range symbols {
			if ctx.Err() != nil {
				break
			}
			n, err := u.ingestOne(ctx, index, s, window, interval)
			if errors.Is(err, sessiondomain.ErrAuth) {
				slog.Error("access token rejected, aborting fetch pass", "symbol", s, "error", err)
				return RunResult{}, err
			}
			if err != nil {
				// One symbol failing must not stop the others.
				slog.Error("failed to ingest symbol", "symbol", s, "error", err)
				result.Failed = append(result.Failed, s)
				continue
			}
			slog.Info("symbol ingested", "symbol", s, "bars", n)
			result.Updated = append(result.Updated, s)
		}
	}

	if err := ctx.Err(); err != nil {
		slog.Error("fetch pass interrupted",
			"updated", len(result.Updated),
			"failed", len(result.Failed),
			"error", err,
		)
		return RunResult{}, err
	}

	if err := u.manifest.WriteManifest(ctx, symbols); err != nil {
		slog.Error("failed to write manifest", "error", fmt.Errorf("%w: %w", domain.ErrPersist, err))
	}

	slog.Info("fetch pass complete",
		"updated", len(result.Updated),
		"failed", len(result.Failed),
		"next_from_date", result.NextFromDate.Format(DateLayout),
	)
	return result, nil
}
