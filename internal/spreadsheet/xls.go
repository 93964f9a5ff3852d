package spreadsheet

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
)

// xlsReader reads legacy .xls workbooks via extrame/xls.
type xlsReader struct {
	wb     *xls.WorkBook
	closer io.Closer
}

// OpenXLS opens a legacy .xls workbook for reading.
func OpenXLS(path string) (Reader, error) {
	wb, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook %q: %w", path, err)
	}
	return &xlsReader{wb: wb, closer: closer}, nil
}

// sheetByName finds a worksheet by its name; the legacy API only offers
// index-based access.
func (r *xlsReader) sheetByName(name string) (*xls.WorkSheet, error) {
	for i := 0; i < r.wb.NumSheets(); i++ {
		if s := r.wb.GetSheet(i); s != nil && s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found in workbook", name)
}

func (r *xlsReader) ReadCell(sheet string, row, col int) (string, error) {
	s, err := r.sheetByName(sheet)
	if err != nil {
		return "", err
	}
	if row > int(s.MaxRow) {
		return "", nil
	}
	xr := s.Row(row)
	// LastCol is exclusive.
	if xr == nil || col < xr.FirstCol() || col >= xr.LastCol() {
		return "", nil
	}
	return xr.Col(col), nil
}

func (r *xlsReader) ReadTable(sheet string, headerRow int) (holdings.RawTable, error) {
	s, err := r.sheetByName(sheet)
	if err != nil {
		return holdings.RawTable{}, err
	}
	if int(s.MaxRow) < headerRow {
		return holdings.RawTable{}, fmt.Errorf("sheet %q has %d rows, header expected at row %d", sheet, int(s.MaxRow)+1, headerRow+1)
	}

	var header []string
	var records [][]string
	for i := headerRow; i <= int(s.MaxRow); i++ {
		xr := s.Row(i)
		if xr == nil {
			continue
		}
		var cells []string
		for c := 0; c < xr.LastCol(); c++ {
			cells = append(cells, xr.Col(c))
		}
		if header == nil {
			header = cells
			continue
		}
		records = append(records, cells)
	}
	if header == nil {
		return holdings.RawTable{}, fmt.Errorf("sheet %q has no header row at row %d", sheet, headerRow+1)
	}
	return holdings.RawTable{Header: header, Records: records}, nil
}

func (r *xlsReader) Close() error {
	return r.closer.Close()
}
