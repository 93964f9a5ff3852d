// Package source acquires the raw holdings table from one of several ranked
// ingestion paths: remote CSV download, local CSV fallback, and spreadsheet
// extraction, plus the product-page scraper for shares outstanding. The
// resolver tries sources in a fixed order and hands the first structurally
// valid table downstream, so the rest of the pipeline never sees a partial
// result.
package source

import (
	"context"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
)

// Result is one source's successful ingestion output.
type Result struct {
	Raw        holdings.RawTable
	Provenance holdings.Provenance

	// SharesOutstanding is set only by sources that carry their own figure
	// (the spreadsheet variants). Otherwise the caller supplies one.
	SharesOutstanding *float64
}

// Source produces a raw holdings table. Implementations tag unrecoverable
// failures with FatalError so the resolver knows not to fall through.
type Source interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// Fetch acquires and parses the holdings table.
	Fetch(ctx context.Context) (Result, error)
}
