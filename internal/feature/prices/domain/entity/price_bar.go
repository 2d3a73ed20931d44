// Package entity defines the domain models for the prices feature.
package entity

import (
	"time"

	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"
)

// PriceBar is one OHLCV row for a symbol on a trading date (or bar start time
// for intraday intervals). The last three fields are reserved for delivery
// data and stay invalid until something enriches them.
type PriceBar struct {
	Symbol string    // Trading symbol (e.g., "INFY", "RELIANCE")
	Date   time.Time // Exchange wall-clock start of the bar, zone dropped
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64

	TotalTrades null.Int   // TOTAL_TRADES
	QtyPerTrade null.Float // QTY_PER_TRADE
	DeliveryQty null.Int   // DLV_QTY
}
