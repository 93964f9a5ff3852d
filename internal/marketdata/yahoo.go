package marketdata

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/ratelimit"
)

// quoteResponse represents the Yahoo Finance v7 quote endpoint response.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			CurrentPrice       *float64 `json:"currentPrice"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// chartResponse represents the Yahoo Finance v8 chart endpoint response.
// Only the closing prices are consumed.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// YahooClient fetches prices and FX rates from the public Yahoo Finance
// endpoints. Every lookup waits on the pacing limiter first, so callers get
// the provider's rate-limit budget for free.
type YahooClient struct {
	client *resty.Client
	pacer  *ratelimit.Limiter
}

// NewYahooClient creates a market data client against baseURL.
func NewYahooClient(baseURL, userAgent string, timeout time.Duration, pacer *ratelimit.Limiter) *YahooClient {
	return &YahooClient{
		client: newHTTPClient(baseURL, userAgent, timeout),
		pacer:  pacer,
	}
}

// CurrentPrice retrieves the current price for a ticker, preferring the
// currentPrice field and falling back to regularMarketPrice. Returns
// ErrNotFound when the provider has no usable quote.
func (c *YahooClient) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return 0, err
	}

	var result quoteResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbols": ticker,
			"fields":  "currentPrice,regularMarketPrice",
		}).
		SetResult(&result).
		Get("/v7/finance/quote")

	if err != nil {
		return 0, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("quote API returned status %d for %s", resp.StatusCode(), ticker)
	}

	if len(result.QuoteResponse.Result) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}

	quote := result.QuoteResponse.Result[0]
	if quote.CurrentPrice != nil {
		return *quote.CurrentPrice, nil
	}
	if quote.RegularMarketPrice != nil {
		return *quote.RegularMarketPrice, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNotFound, ticker)
}

// LastClose retrieves the most recent daily close for a ticker.
func (c *YahooClient) LastClose(ctx context.Context, ticker string) (float64, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return 0, err
	}

	var result chartResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":    "1d",
			"interval": "1d",
		}).
		SetResult(&result).
		Get("/v8/finance/chart/" + ticker)

	if err != nil {
		return 0, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("chart API returned status %d for %s", resp.StatusCode(), ticker)
	}

	for _, r := range result.Chart.Result {
		for _, q := range r.Indicators.Quote {
			// Most recent non-nil close wins.
			for i := len(q.Close) - 1; i >= 0; i-- {
				if q.Close[i] != nil {
					return *q.Close[i], nil
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNotFound, ticker)
}

// FxRate retrieves the last close of the Yahoo FX symbol for a pair, e.g.
// "EURUSD" resolves through "EURUSD=X".
func (c *YahooClient) FxRate(ctx context.Context, pair string) (float64, error) {
	return c.LastClose(ctx, pair+"=X")
}
