// Package testutil provides shared mocks for the pipeline's seams: the
// market-data provider and the holdings source.
package testutil

import (
	"context"
	"fmt"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/marketdata"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/source"
)

// MockProvider is a mock implementation of marketdata.Provider. Unset
// functions report ErrNotFound.
type MockProvider struct {
	CurrentPriceFunc func(ctx context.Context, ticker string) (float64, error)
	LastCloseFunc    func(ctx context.Context, ticker string) (float64, error)
	FxRateFunc       func(ctx context.Context, pair string) (float64, error)
}

// CurrentPrice implements marketdata.Provider.
func (m *MockProvider) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	if m.CurrentPriceFunc != nil {
		return m.CurrentPriceFunc(ctx, ticker)
	}
	return 0, fmt.Errorf("%w: %s", marketdata.ErrNotFound, ticker)
}

// LastClose implements marketdata.Provider.
func (m *MockProvider) LastClose(ctx context.Context, ticker string) (float64, error) {
	if m.LastCloseFunc != nil {
		return m.LastCloseFunc(ctx, ticker)
	}
	return 0, fmt.Errorf("%w: %s", marketdata.ErrNotFound, ticker)
}

// FxRate implements marketdata.Provider.
func (m *MockProvider) FxRate(ctx context.Context, pair string) (float64, error) {
	if m.FxRateFunc != nil {
		return m.FxRateFunc(ctx, pair)
	}
	return 0, fmt.Errorf("%w: %s", marketdata.ErrNotFound, pair)
}

// StaticPrices creates a provider answering from fixed price and FX tables.
// Tickers absent from prices report ErrNotFound.
func StaticPrices(prices map[string]float64, fx map[string]float64) *MockProvider {
	return &MockProvider{
		CurrentPriceFunc: func(ctx context.Context, ticker string) (float64, error) {
			if p, ok := prices[ticker]; ok {
				return p, nil
			}
			return 0, fmt.Errorf("%w: %s", marketdata.ErrNotFound, ticker)
		},
		FxRateFunc: func(ctx context.Context, pair string) (float64, error) {
			if r, ok := fx[pair]; ok {
				return r, nil
			}
			return 0, fmt.Errorf("%w: %s", marketdata.ErrNotFound, pair)
		},
	}
}

// MockSource is a mock implementation of source.Source.
type MockSource struct {
	NameValue string
	FetchFunc func(ctx context.Context) (source.Result, error)
}

// Name implements source.Source.
func (m *MockSource) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// Fetch implements source.Source.
func (m *MockSource) Fetch(ctx context.Context) (source.Result, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return source.Result{}, nil
}
