// Package valuation converts a cleaned holdings table into a total portfolio
// value in USD, tracking every row that could not be valued. The engine
// walks the table in order with a single owned accumulator; per-row detail
// is printed only for the top-10 equity positions to bound output volume.
package valuation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/marketdata"
)

const (
	// topHoldingsCount bounds the verbose per-row reporting.
	topHoldingsCount = 10

	// maxTickerLen disqualifies footnote/non-security rows from lookup.
	maxTickerLen = 10

	// progressEvery spaces the progress lines for non-top-10 holdings.
	progressEvery = 25
)

// Result accumulates the valuation of one run.
type Result struct {
	// TotalUSD is the summed USD value of every successfully valued row.
	TotalUSD float64

	// Top10 holds up to ten equity tickers ranked by the holdings snapshot's
	// market value, selected before any live repricing.
	Top10 []string

	// Processed counts rows the engine walked, valued or not.
	Processed int

	missing map[string]struct{}
}

// addMissing records a row that could not be valued.
func (r *Result) addMissing(tag string) {
	if r.missing == nil {
		r.missing = make(map[string]struct{})
	}
	r.missing[tag] = struct{}{}
}

// Missing returns the deduplicated, sorted list of unvalued row tags.
func (r *Result) Missing() []string {
	if len(r.missing) == 0 {
		return nil
	}
	tags := make([]string, 0, len(r.missing))
	for tag := range r.missing {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Engine values holdings rows against live market data.
type Engine struct {
	provider marketdata.Provider
	out      io.Writer
}

// New creates a valuation engine. out receives the human-readable per-row
// detail; pass io.Discard to silence it.
func New(provider marketdata.Provider, out io.Writer) *Engine {
	if out == nil {
		out = io.Discard
	}
	return &Engine{provider: provider, out: out}
}

// TopEquities selects up to n equity tickers by descending market value from
// the holdings snapshot. The selection deliberately predates live repricing:
// it reflects the published holdings, not current prices.
func TopEquities(table holdings.Table, n int) []string {
	type ranked struct {
		ticker string
		value  float64
	}
	var equities []ranked
	for _, row := range table.Rows {
		if row.AssetClass != holdings.AssetClassEquity || row.MarketValue == nil {
			continue
		}
		equities = append(equities, ranked{ticker: row.Ticker, value: *row.MarketValue})
	}
	sort.SliceStable(equities, func(i, j int) bool {
		return equities[i].value > equities[j].value
	})

	if len(equities) > n {
		equities = equities[:n]
	}
	tickers := make([]string, len(equities))
	for i, e := range equities {
		tickers[i] = e.ticker
	}
	return tickers
}

// Value walks the table in order, valuing each row in USD. Failures never
// stop the pass: an unvalued row is recorded in the missing set and
// contributes zero.
func (e *Engine) Value(ctx context.Context, table holdings.Table, rates FxRates) *Result {
	result := &Result{Top10: TopEquities(table, topHoldingsCount)}
	top := make(map[string]bool, len(result.Top10))
	for _, ticker := range result.Top10 {
		top[ticker] = true
	}

	for _, row := range table.Rows {
		e.valueRow(ctx, row, rates, result, top[row.Ticker], len(table.Rows))
		result.Processed++
	}
	return result
}

func (e *Engine) valueRow(ctx context.Context, row holdings.Row, rates FxRates, result *Result, detail bool, total int) {
	// Rows with absent identity fields are never valued.
	if row.Ticker == "" || row.MarketCurrency == "" || row.AssetClass == "" {
		return
	}

	switch row.AssetClass {
	case holdings.AssetClassEquity:
		e.valueEquity(ctx, row, result, detail, total)
	case holdings.AssetClassCash:
		e.valueCash(row, rates, result)
	default:
		// Other asset classes are unhandled and contribute nothing.
	}
}

func (e *Engine) valueEquity(ctx context.Context, row holdings.Row, result *Result, detail bool, total int) {
	if !detail && result.Processed%progressEvery == 0 {
		fmt.Fprintf(e.out, "  Processing other holdings... (%d/%d)\n", result.Processed+1, total)
	}

	if len(row.Ticker) > maxTickerLen || strings.Contains(row.Ticker, " ") {
		fmt.Fprintf(e.out, "  Skipping invalid ticker: %s\n", row.Ticker)
		return
	}

	price, err := e.lookupPrice(ctx, row.Ticker)
	if err != nil {
		result.addMissing(row.Ticker)
		if detail {
			fmt.Fprintf(e.out, "  -> Warning: Could not retrieve price for %s\n", row.Ticker)
		}
		slog.Warn("price lookup failed", "ticker", row.Ticker, "error", err)
		return
	}

	value := row.Shares * price
	result.TotalUSD += value
	if detail {
		fmt.Fprintf(e.out, "  -> %s: Shares: %.2f, Price: %.2f USD, Value: %.2f USD\n", row.Ticker, row.Shares, price, value)
	}
}

// lookupPrice prefers the current/regular market price and falls back to the
// most recent daily close only when the quote is absent, not on transport
// errors.
func (e *Engine) lookupPrice(ctx context.Context, ticker string) (float64, error) {
	price, err := e.provider.CurrentPrice(ctx, ticker)
	if err == nil {
		return price, nil
	}
	if errors.Is(err, marketdata.ErrNotFound) {
		return e.provider.LastClose(ctx, ticker)
	}
	return 0, err
}

func (e *Engine) valueCash(row holdings.Row, rates FxRates, result *Result) {
	if row.MarketValue == nil {
		slog.Warn("cash row missing market value, skipping", "currency", row.MarketCurrency)
		return
	}
	amount := *row.MarketValue
	fmt.Fprintf(e.out, "  Processing Cash: %.2f %s\n", amount, row.MarketCurrency)

	switch row.MarketCurrency {
	case "USD":
		result.TotalUSD += amount
	case "EUR", "GBP":
		rate, ok := rates[row.MarketCurrency]
		if !ok {
			slog.Warn("cannot convert cash, missing fx rate", "currency", row.MarketCurrency)
			result.addMissing(row.MarketCurrency + " Cash")
			return
		}
		value := amount * rate
		result.TotalUSD += value
		fmt.Fprintf(e.out, "    Converted Value: %.2f USD\n", value)
	default:
		slog.Warn("unhandled cash currency", "currency", row.MarketCurrency)
		result.addMissing(row.MarketCurrency + " Cash")
	}
}
