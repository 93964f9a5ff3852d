package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
	"github.com/ahmadazimazri/isdu-etf-nav/internal/spreadsheet"
)

// SpreadsheetSource extracts both the holdings table and shares outstanding
// from a single workbook. There is no fallback behind it, so every failure
// is fatal: a missing file, an unreadable shares cell, or a malformed sheet
// all abort the run.
type SpreadsheetSource struct {
	open      func() (spreadsheet.Reader, error)
	sheet     string
	sharesRow int
	sharesCol int
	headerRow int
}

// NewSpreadsheetSource creates a spreadsheet source. The open function hides
// the workbook format (modern or legacy); coordinates are 0-based.
func NewSpreadsheetSource(open func() (spreadsheet.Reader, error), sheet string, sharesRow, sharesCol, headerRow int) *SpreadsheetSource {
	return &SpreadsheetSource{
		open:      open,
		sheet:     sheet,
		sharesRow: sharesRow,
		sharesCol: sharesCol,
		headerRow: headerRow,
	}
}

// Name identifies the source in logs.
func (s *SpreadsheetSource) Name() string {
	return "spreadsheet"
}

// Fetch reads the shares outstanding cell and the holdings table.
func (s *SpreadsheetSource) Fetch(ctx context.Context) (Result, error) {
	reader, err := s.open()
	if err != nil {
		return Result{}, fatalf("open holdings workbook: %w", err)
	}
	defer reader.Close()

	cell, err := reader.ReadCell(s.sheet, s.sharesRow, s.sharesCol)
	if err != nil {
		return Result{}, fatalf("read shares outstanding cell (row %d, col %d): %w", s.sharesRow, s.sharesCol, err)
	}

	shares, err := parseSharesCell(cell)
	if err != nil {
		return Result{}, fatalf("shares outstanding cell (row %d, col %d): %w", s.sharesRow, s.sharesCol, err)
	}

	raw, err := reader.ReadTable(s.sheet, s.headerRow)
	if err != nil {
		return Result{}, fatalf("read holdings table: %w", err)
	}

	return Result{
		Raw:               raw,
		Provenance:        holdings.ProvenanceSpreadsheet,
		SharesOutstanding: &shares,
	}, nil
}

// parseSharesCell accepts a numeric or comma-formatted numeric string and
// rejects anything else. Unlike the page scrape, a decimal point is allowed
// here because workbook exports render the figure as a float.
func parseSharesCell(cell string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cleaned == "" {
		return 0, errors.New("cell is empty")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", cell)
	}
	return v, nil
}
