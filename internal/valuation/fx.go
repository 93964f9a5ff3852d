package valuation

import (
	"context"
	"log/slog"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/marketdata"
)

// cashCurrencies are the non-USD cash currencies the fund holds. Anything
// else is unsupported and recorded as a missing valuation.
var cashCurrencies = []string{"EUR", "GBP"}

// FxRates maps a currency code to its USD conversion rate. A missing entry
// means the currency's cash rows cannot be valued this run.
type FxRates map[string]float64

// FetchRates fetches the USD conversion rate for each supported cash
// currency, once per run. A failed lookup is a warning, not fatal: the
// valuation of the affected cash rows degrades to a missing valuation.
func FetchRates(ctx context.Context, provider marketdata.Provider) FxRates {
	rates := make(FxRates, len(cashCurrencies))
	for _, currency := range cashCurrencies {
		pair := currency + "USD"
		rate, err := provider.FxRate(ctx, pair)
		if err != nil {
			slog.Warn("could not fetch fx rate", "pair", pair, "error", err)
			continue
		}
		rates[currency] = rate
	}
	return rates
}
