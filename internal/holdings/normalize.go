package holdings

import (
	"strconv"
	"strings"
)

// sentinel cell values treated as absent regardless of column.
var sentinelValues = map[string]bool{
	"":    true,
	"N/A": true,
	"-":   true,
	"--":  true,
}

// Normalize cleans one raw numeric cell: thousands separators are stripped,
// a trailing percent sign is stripped when the column carries percentages,
// and the remainder is parsed as a float. It reports ok=false instead of
// failing, and is idempotent on already-clean numeric text.
func Normalize(raw string, percent bool) (float64, bool) {
	s := trimCell(raw)
	s = strings.ReplaceAll(s, ",", "")
	if percent {
		s = strings.TrimSuffix(s, "%")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func trimCell(s string) string {
	return strings.TrimSpace(s)
}

func isSentinel(s string) bool {
	return sentinelValues[trimCell(s)]
}
