// Package holdings defines the fund holdings data model shared by every
// ingestion path: the raw parsed table, the cleaned row/table types, and the
// numeric cell normalizer. All sources (remote CSV, local CSV, spreadsheet)
// converge on RawTable and are cleaned identically by Clean.
package holdings

// Column names exactly as they appear in the published holdings files.
const (
	ColTicker         = "Ticker"
	ColShares         = "Shares"
	ColMarketCurrency = "Market Currency"
	ColAssetClass     = "Asset Class"
	ColMarketValue    = "Market Value"
	ColWeightPercent  = "Weight (%)"
	ColNotionalValue  = "Notional Value"
	ColPrice          = "Price"
)

// RequiredColumns must be present for valuation to be meaningful. A missing
// column is reported to the caller, which decides whether it is fatal.
var RequiredColumns = []string{
	ColTicker,
	ColShares,
	ColMarketCurrency,
	ColAssetClass,
	ColMarketValue,
}

// AssetClass categorizes a holding row. Values other than Equity and Cash
// pass through unhandled and contribute nothing to the valuation.
type AssetClass string

const (
	AssetClassEquity AssetClass = "Equity"
	AssetClassCash   AssetClass = "Cash"
)

// Provenance records which ingestion path produced the in-use holdings table.
// The string values are written verbatim to the source status file.
type Provenance string

const (
	ProvenanceURL         Provenance = "URL"
	ProvenanceLocalFile   Provenance = "Local File"
	ProvenanceSpreadsheet Provenance = "Spreadsheet"
	ProvenanceUnknown     Provenance = "Unknown"
)

// Row is one cleaned fund position. Optional numeric fields are nil when the
// source cell was empty or unparsable.
type Row struct {
	Ticker         string
	Shares         float64
	MarketCurrency string
	AssetClass     AssetClass
	MarketValue    *float64
	WeightPercent  *float64
	NotionalValue  *float64
	Price          *float64
}

// Table is an ordered collection of cleaned rows plus its provenance.
// It is never handed downstream partially built.
type Table struct {
	Rows       []Row
	Provenance Provenance
}

// RawTable is a parsed but uncleaned holdings table: one header record and
// zero or more data records, straight out of a CSV parser or spreadsheet
// reader. It is the seam between the source variants and the cleaner.
type RawTable struct {
	Header  []string
	Records [][]string
}

// MissingColumns returns the required columns absent from the raw header,
// in RequiredColumns order.
func (r RawTable) MissingColumns() []string {
	idx := columnIndex(r.Header)
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// columnIndex maps trimmed header names to their positions. The first
// occurrence wins.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = trimCell(name)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}
