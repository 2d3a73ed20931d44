// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

// ErrCatalog is fatal for the whole run; the other errors are isolated to a
// single symbol, logged, and skipped.
var (
	// ErrCatalog indicates the instrument catalog could not be fetched.
	ErrCatalog = errors.New("instrument catalog unavailable")

	// ErrInstrumentNotFound indicates a configured symbol is absent from the instrument index.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrFetch indicates the provider failed to return historical data for a symbol.
	ErrFetch = errors.New("historical data fetch failed")

	// ErrPersist indicates a symbol's table or the manifest could not be read or written.
	ErrPersist = errors.New("persist failed")
)
