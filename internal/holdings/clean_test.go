package holdings

import (
	"reflect"
	"testing"
)

func fullHeader() []string {
	return []string{ColTicker, "Name", ColShares, ColMarketCurrency, ColAssetClass, ColMarketValue, ColWeightPercent, ColNotionalValue, ColPrice}
}

func TestClean_KeepsValidRows(t *testing.T) {
	raw := RawTable{
		Header: fullHeader(),
		Records: [][]string{
			{"AAPL", "APPLE INC", "1,200.50", "USD", "Equity", "250,000.00", "5.25%", "250,000.00", "208.25"},
			{"", "US DOLLAR", "500", "USD", "Cash", "500.00", "0.01%", "500.00", "1.00"},
		},
	}

	table, missing := Clean(raw, ProvenanceURL)
	if len(missing) != 0 {
		t.Fatalf("missing columns = %v, want none", missing)
	}
	if table.Provenance != ProvenanceURL {
		t.Errorf("provenance = %q, want %q", table.Provenance, ProvenanceURL)
	}
	// The cash row has a sentinel-empty ticker and must be dropped.
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}

	row := table.Rows[0]
	if row.Ticker != "AAPL" || row.Shares != 1200.50 || row.MarketCurrency != "USD" || row.AssetClass != AssetClassEquity {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.MarketValue == nil || *row.MarketValue != 250000 {
		t.Errorf("market value = %v, want 250000", row.MarketValue)
	}
	if row.WeightPercent == nil || *row.WeightPercent != 5.25 {
		t.Errorf("weight percent = %v, want 5.25", row.WeightPercent)
	}
	if row.Price == nil || *row.Price != 208.25 {
		t.Errorf("price = %v, want 208.25", row.Price)
	}
}

func TestClean_DropsInvalidRows(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"sentinel ticker", []string{"N/A", "", "100", "USD", "Equity", "1", "", "", ""}},
		{"empty currency", []string{"MSFT", "", "100", "", "Equity", "1", "", "", ""}},
		{"dash asset class", []string{"MSFT", "", "100", "USD", "-", "1", "", "", ""}},
		{"non-numeric shares", []string{"MSFT", "", "n/a", "USD", "Equity", "1", "", "", ""}},
		{"empty shares", []string{"MSFT", "", "", "USD", "Equity", "1", "", "", ""}},
		{"short record", []string{"MSFT", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawTable{Header: fullHeader(), Records: [][]string{tt.record}}
			table, _ := Clean(raw, ProvenanceUnknown)
			if len(table.Rows) != 0 {
				t.Errorf("row was retained: %+v", table.Rows[0])
			}
		})
	}
}

func TestClean_OptionalNumericStaysNil(t *testing.T) {
	raw := RawTable{
		Header: fullHeader(),
		Records: [][]string{
			{"GOOG", "", "10", "USD", "Equity", "-", "", "n/a", ""},
		},
	}

	table, _ := Clean(raw, ProvenanceLocalFile)
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row.MarketValue != nil || row.WeightPercent != nil || row.NotionalValue != nil || row.Price != nil {
		t.Errorf("optional fields should be nil: %+v", row)
	}
}

func TestClean_ReportsMissingColumns(t *testing.T) {
	raw := RawTable{
		Header:  []string{ColTicker, ColShares, "ISIN"},
		Records: [][]string{{"AAPL", "100", "US0378331005"}},
	}

	_, missing := Clean(raw, ProvenanceURL)
	want := []string{ColMarketCurrency, ColAssetClass, ColMarketValue}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}
