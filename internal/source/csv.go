package source

import (
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
)

// decodeText interprets fetched bytes as UTF-8, falling back to Latin-1 when
// the payload is not valid UTF-8. Latin-1 decoding cannot fail, so no error
// escapes this point.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// parseHoldingsCSV drops skipLines metadata lines, then parses the remainder
// as a delimited table with the header on the first retained line. It fails
// fast with ErrShortCSV when the payload cannot contain a header after the
// skip.
func parseHoldingsCSV(text string, skipLines int) (holdings.RawTable, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= skipLines {
		return holdings.RawTable{}, fmt.Errorf("%w: got %d lines, need more than %d", ErrShortCSV, len(lines), skipLines)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[skipLines:], "\n")))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return holdings.RawTable{}, fmt.Errorf("parse holdings csv: %w", err)
	}
	if len(records) == 0 {
		return holdings.RawTable{}, fmt.Errorf("%w: no header after skipping %d lines", ErrShortCSV, skipLines)
	}

	return holdings.RawTable{Header: records[0], Records: records[1:]}, nil
}
