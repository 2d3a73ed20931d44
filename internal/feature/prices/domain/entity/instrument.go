package entity

// Instrument is one row of the provider's instrument catalog.
type Instrument struct {
	InstrumentToken int64
	TradingSymbol   string
	Name            string
	Exchange        string
	Segment         string
	InstrumentType  string
}

// InstrumentIndex maps a trading symbol to its instrument token on one exchange.
type InstrumentIndex map[string]int64

// Lookup returns the instrument token for symbol.
func (ix InstrumentIndex) Lookup(symbol string) (int64, bool) {
	token, ok := ix[symbol]
	return token, ok
}
