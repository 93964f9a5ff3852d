package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
)

// xlsxReader reads modern .xlsx workbooks via excelize.
type xlsxReader struct {
	f *excelize.File
}

// OpenXLSX opens an .xlsx workbook for reading.
func OpenXLSX(path string) (Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx workbook %q: %w", path, err)
	}
	return &xlsxReader{f: f}, nil
}

func (r *xlsxReader) ReadCell(sheet string, row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", fmt.Errorf("cell coordinates (%d,%d): %w", row, col, err)
	}
	value, err := r.f.GetCellValue(sheet, name)
	if err != nil {
		return "", fmt.Errorf("read cell %s!%s: %w", sheet, name, err)
	}
	return value, nil
}

func (r *xlsxReader) ReadTable(sheet string, headerRow int) (holdings.RawTable, error) {
	rows, err := r.f.GetRows(sheet)
	if err != nil {
		return holdings.RawTable{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) <= headerRow {
		return holdings.RawTable{}, fmt.Errorf("sheet %q has %d rows, header expected at row %d", sheet, len(rows), headerRow+1)
	}
	return holdings.RawTable{
		Header:  rows[headerRow],
		Records: rows[headerRow+1:],
	}, nil
}

func (r *xlsxReader) Close() error {
	return r.f.Close()
}
