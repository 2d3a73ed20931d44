package kite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock_fetcher/internal/feature/prices/domain/entity"
	"stock_fetcher/internal/feature/prices/usecase"
)

// Client is the brokerage behind the prices engine.
var _ usecase.MarketRepository = (*Client)(nil)

// HistoricalData returns the candles of one instrument between the start of
// from's day and the end of to's day.
func (c *Client) HistoricalData(ctx context.Context, instrumentToken int64, from, to time.Time, interval string) ([]entity.PriceBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := startOfDay(from)
	end := startOfDay(to).Add(24*time.Hour - time.Second)
	candles, err := c.kc.GetHistoricalData(int(instrumentToken), interval, start, end, false, false)
	if err != nil {
		return nil, fmt.Errorf("kite historical %d/%s: %w", instrumentToken, interval, wrapError(err))
	}

	bars := make([]entity.PriceBar, 0, len(candles))
	for _, cd := range candles {
		bars = append(bars, toPriceBar(cd))
	}
	return bars, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// toPriceBar keeps the exchange's wall-clock time and drops its offset.
func toPriceBar(cd kiteconnect.HistoricalData) entity.PriceBar {
	tm := cd.Date.Time
	return entity.PriceBar{
		Date:   time.Date(tm.Year(), tm.Month(), tm.Day(), tm.Hour(), tm.Minute(), tm.Second(), 0, time.UTC),
		Open:   decimal.NewFromFloat(cd.Open),
		High:   decimal.NewFromFloat(cd.High),
		Low:    decimal.NewFromFloat(cd.Low),
		Close:  decimal.NewFromFloat(cd.Close),
		Volume: int64(cd.Volume),
	}
}
