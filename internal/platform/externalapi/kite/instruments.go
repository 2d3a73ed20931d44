package kite

import (
	"context"
	"errors"
	"fmt"

	"stock_fetcher/internal/feature/prices/domain/entity"
)

var errEmptyCatalog = errors.New("kite: instrument catalog is empty")

// Instruments downloads the full instrument catalog across all exchanges.
func (c *Client) Instruments(ctx context.Context) ([]entity.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list, err := c.kc.GetInstruments()
	if err != nil {
		return nil, fmt.Errorf("kite instruments: %w", wrapError(err))
	}
	// Error bodies are not checked by the SDK's CSV path and decode to no rows.
	if len(list) == 0 {
		return nil, errEmptyCatalog
	}

	out := make([]entity.Instrument, 0, len(list))
	for _, in := range list {
		out = append(out, entity.Instrument{
			InstrumentToken: int64(in.InstrumentToken),
			TradingSymbol:   in.Tradingsymbol,
			Name:            in.Name,
			Exchange:        in.Exchange,
			Segment:         in.Segment,
			InstrumentType:  in.InstrumentType,
		})
	}
	return out, nil
}
