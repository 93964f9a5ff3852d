package holdings

import "strings"

// Clean validates and coerces a raw table into a Table ready for valuation.
// It runs identically for every source variant: numeric-bearing columns go
// through Normalize, and rows missing any of ticker, shares, market currency,
// or asset class after coercion are dropped. The returned slice lists the
// required columns absent from the header; the caller decides whether that
// is a warning or fatal.
func Clean(raw RawTable, prov Provenance) (Table, []string) {
	missing := raw.MissingColumns()
	idx := columnIndex(raw.Header)

	table := Table{Provenance: prov, Rows: make([]Row, 0, len(raw.Records))}
	for _, record := range raw.Records {
		row, ok := cleanRecord(record, idx)
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, missing
}

// cleanRecord coerces one data record. ok is false when a required field is
// absent, sentinel, or fails numeric coercion.
func cleanRecord(record []string, idx map[string]int) (Row, bool) {
	ticker := cell(record, idx, ColTicker)
	currency := cell(record, idx, ColMarketCurrency)
	class := cell(record, idx, ColAssetClass)
	if isSentinel(ticker) || isSentinel(currency) || isSentinel(class) {
		return Row{}, false
	}

	sharesRaw, ok := cellPresent(record, idx, ColShares)
	if !ok {
		return Row{}, false
	}
	shares, ok := Normalize(sharesRaw, false)
	if !ok {
		return Row{}, false
	}

	row := Row{
		Ticker:         ticker,
		Shares:         shares,
		MarketCurrency: currency,
		AssetClass:     AssetClass(class),
	}
	row.MarketValue = numericCell(record, idx, ColMarketValue)
	row.WeightPercent = numericCell(record, idx, ColWeightPercent)
	row.NotionalValue = numericCell(record, idx, ColNotionalValue)
	row.Price = numericCell(record, idx, ColPrice)
	return row, true
}

// cell returns the trimmed value of the named column, or "" when the column
// or the field is absent.
func cell(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return trimCell(record[i])
}

func cellPresent(record []string, idx map[string]int, col string) (string, bool) {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return "", false
	}
	return record[i], true
}

// numericCell normalizes an optional numeric column, yielding nil when the
// cell is absent or unparsable.
func numericCell(record []string, idx map[string]int, col string) *float64 {
	raw, ok := cellPresent(record, idx, col)
	if !ok {
		return nil
	}
	v, ok := Normalize(raw, strings.Contains(col, "%"))
	if !ok {
		return nil
	}
	return &v
}
