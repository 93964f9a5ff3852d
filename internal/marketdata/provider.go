// Package marketdata provides live price and FX lookups for the valuation
// engine. The Provider interface is the seam the engine calls; the Yahoo
// client is the production implementation.
package marketdata

import (
	"context"
	"errors"
)

// ErrNotFound indicates the provider answered but had no usable quote for
// the requested symbol. Callers distinguish it from transport errors to
// decide whether a fallback lookup is worth attempting.
var ErrNotFound = errors.New("quote not found")

// Provider supplies live market data. Implementations must apply their own
// pacing against the upstream provider's rate limits.
type Provider interface {
	// CurrentPrice returns the current or regular market price for a ticker.
	CurrentPrice(ctx context.Context, ticker string) (float64, error)

	// LastClose returns the most recent daily closing price for a ticker.
	LastClose(ctx context.Context, ticker string) (float64, error)

	// FxRate returns the conversion rate for a currency pair such as "EURUSD".
	FxRate(ctx context.Context, pair string) (float64, error)
}
