// Package pipeline runs one NAV estimation end to end: resolve a holdings
// table, clean it, value it against live market data, decide the publish
// outcome, and persist the status artifacts. Every fatal path writes the
// ERROR sentinel before returning so downstream consumers never observe a
// stale result.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/marketdata"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/nav"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/source"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/status"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/valuation"
)

// SharesScraper supplies shares outstanding for run modes where the figure
// is scraped rather than configured or extracted.
type SharesScraper interface {
	SharesOutstanding(ctx context.Context) (float64, error)
}

// Pipeline wires the stages of one estimation run.
type Pipeline struct {
	sources     []source.Source
	scraper     SharesScraper // nil unless the run mode scrapes the figure
	fixedShares float64       // configured fallback divisor
	provider    marketdata.Provider
	sink        *status.Sink
	out         io.Writer
}

// New creates a pipeline. out receives the human-readable run report; pass
// io.Discard to silence it.
func New(sources []source.Source, scraper SharesScraper, fixedShares float64, provider marketdata.Provider, sink *status.Sink, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{
		sources:     sources,
		scraper:     scraper,
		fixedShares: fixedShares,
		provider:    provider,
		sink:        sink,
		out:         out,
	}
}

// Run executes the estimation. The returned outcome reflects the publish
// decision; a non-nil error means ingestion failed before any valuation
// could happen. In both failure shapes the ERROR sentinel has already been
// persisted.
func (p *Pipeline) Run(ctx context.Context) (nav.Outcome, error) {
	shares := p.fixedShares

	// Shares outstanding has no other origin in the scrape mode, so a
	// failed extraction ends the run before any holdings work.
	if p.scraper != nil {
		fmt.Fprintln(p.out, "Scraping Shares Outstanding from product page...")
		scraped, err := p.scraper.SharesOutstanding(ctx)
		if err != nil {
			p.sink.WriteResult(nav.ErrorResult)
			return nav.Outcome{}, fmt.Errorf("scrape shares outstanding: %w", err)
		}
		fmt.Fprintf(p.out, "Successfully scraped Shares Outstanding: %.0f\n", scraped)
		shares = scraped
	}

	res, err := source.Resolve(ctx, p.sources)
	if err != nil {
		p.sink.WriteSource(status.SourceError)
		p.sink.WriteResult(nav.ErrorResult)
		return nav.Outcome{}, err
	}
	p.sink.WriteSource(string(res.Provenance))
	if res.SharesOutstanding != nil {
		shares = *res.SharesOutstanding
		fmt.Fprintf(p.out, "Shares Outstanding from holdings source: %.0f\n", shares)
	}

	table, missingCols := holdings.Clean(res.Raw, res.Provenance)
	if len(missingCols) > 0 {
		slog.Warn("holdings table missing expected columns", "columns", strings.Join(missingCols, ", "))
	}
	fmt.Fprintf(p.out, "Holdings data cleaned: %d rows retained.\n", len(table.Rows))

	top10 := valuation.TopEquities(table, 10)
	if len(top10) > 0 {
		fmt.Fprintf(p.out, "Identified Top 10 Holdings (by initial Market Value): %s\n", strings.Join(top10, ", "))
	}

	fmt.Fprintln(p.out, "\nFetching current FX rates...")
	rates := valuation.FetchRates(ctx, p.provider)
	for _, currency := range []string{"EUR", "GBP"} {
		if rate, ok := rates[currency]; ok {
			fmt.Fprintf(p.out, "  Current %s/USD rate: %.4f\n", currency, rate)
		} else {
			fmt.Fprintf(p.out, "  Warning: Could not fetch %s/USD rate.\n", currency)
		}
	}

	fmt.Fprintln(p.out, "\nFetching current prices and calculating total value...")
	fmt.Fprintln(p.out, "(Displaying details only for Top 10 equities)")
	engine := valuation.New(p.provider, p.out)
	result := engine.Value(ctx, table, rates)

	outcome := nav.Compute(result.TotalUSD, shares, result.Missing())
	p.sink.WriteResult(outcome.String())
	p.printSummary(res.Provenance, shares, result, outcome)
	return outcome, nil
}

func (p *Pipeline) printSummary(prov holdings.Provenance, shares float64, result *valuation.Result, outcome nav.Outcome) {
	fmt.Fprintf(p.out, "\n--- NAV Calculation Summary (%s) ---\n", time.Now().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(p.out, "Holdings Data Source Used: %s\n", prov)

	if missing := result.Missing(); len(missing) > 0 {
		fmt.Fprintf(p.out, "Warning: Could not determine current value for some holdings: %s\n", strings.Join(missing, ", "))
	}

	if !outcome.Computable {
		fmt.Fprintln(p.out, "\nError: Invalid or missing Shares Outstanding value. Cannot calculate NAV per share.")
	} else {
		fmt.Fprintf(p.out, "Total Shares Outstanding used: %.0f\n", shares)
		fmt.Fprintf(p.out, "\nEstimated NAV per Share (USD): %s\n", outcome.NAV.StringFixed(4))
	}

	fmt.Fprintln(p.out, "\nDisclaimer:")
	fmt.Fprintln(p.out, "- This NAV is an ESTIMATE based on fetched prices and the resolved holdings data.")
	fmt.Fprintln(p.out, "- Fund liabilities (fees, etc.) are NOT included.")
	fmt.Fprintln(p.out, "- Always refer to the official NAV published by the fund provider.")

	if !outcome.Published {
		fmt.Fprintln(p.out, "\nResult withheld: ERROR persisted due to missing data.")
	}
}
