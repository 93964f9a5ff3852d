// Package spreadsheet gives positional access to workbook files. Two readers
// exist for the two container formats the publisher has shipped holdings in:
// the modern .xlsx workbook (excelize) and the legacy .xls workbook
// (extrame/xls). Both expose identical row/column coordinates, so the
// holdings source is format-agnostic.
package spreadsheet

import "github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"

// Reader reads scalar cells and tables from one sheet of a workbook.
// Row and column indices are 0-based.
type Reader interface {
	// ReadCell returns the textual value of a single cell. An empty string
	// means the cell is empty or out of range.
	ReadCell(sheet string, row, col int) (string, error)

	// ReadTable reads the holdings table whose header sits at headerRow;
	// all following rows become records.
	ReadTable(sheet string, headerRow int) (holdings.RawTable, error)

	// Close releases the underlying file.
	Close() error
}
