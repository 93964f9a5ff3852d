package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/config"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/marketdata"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/pipeline"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/ratelimit"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/source"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/spreadsheet"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/status"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("isdu-etf-nav", pflag.ContinueOnError)
	flags.String("mode", "", "holdings ingestion mode: scrape, csv, local, xlsx or xls")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		log.Printf("Failed to parse flags: %v", err)
		return 1
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	sources, scraper := buildSources(cfg)
	provider := marketdata.NewYahooClient(
		cfg.QuoteBaseURL,
		cfg.UserAgent,
		cfg.HTTPTimeout(),
		ratelimit.New(cfg.LookupInterval()),
	)
	sink := status.New(cfg.ResultFile, cfg.SourceFile)

	fmt.Printf("Estimating NAV per share (mode: %s)...\n", cfg.Mode)
	fmt.Println("================================================")

	p := pipeline.New(sources, scraper, cfg.SharesOutstanding, provider, sink, os.Stdout)
	outcome, err := p.Run(ctx)
	if err != nil {
		log.Printf("Run failed: %v", err)
		return 1
	}
	if !outcome.Published {
		return 1
	}
	return 0
}

// buildSources assembles the holdings source chain and, for the scrape mode,
// the shares-outstanding scraper. Sources are tried in order; only the remote
// CSV has a fallback.
func buildSources(cfg *config.Config) ([]source.Source, pipeline.SharesScraper) {
	switch cfg.Mode {
	case config.ModeScrape:
		return []source.Source{
			source.NewRemoteCSVSource(cfg.HoldingsCSVURL, cfg.UserAgent, cfg.HTTPTimeout(), cfg.CSVMetadataLines, false),
			source.NewLocalFileSource(cfg.FallbackHoldingsFile),
		}, source.NewPageScraper(cfg.ProductPageURL, cfg.UserAgent, cfg.HTTPTimeout())

	case config.ModeCSV:
		// This mode insists on the expected column set from the remote CSV.
		return []source.Source{
			source.NewRemoteCSVSource(cfg.HoldingsCSVURL, cfg.UserAgent, cfg.HTTPTimeout(), cfg.CSVMetadataLines, true),
			source.NewLocalFileSource(cfg.FallbackHoldingsFile),
		}, nil

	case config.ModeLocal:
		return []source.Source{
			source.NewLocalFileSource(cfg.FallbackHoldingsFile),
		}, nil

	case config.ModeXLSX:
		open := func() (spreadsheet.Reader, error) { return spreadsheet.OpenXLSX(cfg.HoldingsXLSXFile) }
		return []source.Source{
			source.NewSpreadsheetSource(open, cfg.HoldingsSheetName, cfg.SharesCellRow, cfg.SharesCellCol, cfg.TableHeaderRow),
		}, nil

	case config.ModeXLS:
		open := func() (spreadsheet.Reader, error) { return spreadsheet.OpenXLS(cfg.HoldingsXLSFile) }
		return []source.Source{
			source.NewSpreadsheetSource(open, cfg.HoldingsSheetName, cfg.SharesCellRow, cfg.SharesCellCol, cfg.TableHeaderRow),
		}, nil
	}
	// config.Load rejects unknown modes before this point.
	return nil, nil
}
