package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
)

// LocalFileSource reads the holdings CSV from a local path. The file is
// assumed well-formed with the header on line 1, so no metadata lines are
// skipped. It is the terminal fallback for the network variants.
type LocalFileSource struct {
	path string
}

// NewLocalFileSource creates a local file source.
func NewLocalFileSource(path string) *LocalFileSource {
	return &LocalFileSource{path: path}
}

// Name identifies the source in logs.
func (s *LocalFileSource) Name() string {
	return "local file"
}

// Fetch reads and parses the local holdings CSV.
func (s *LocalFileSource) Fetch(ctx context.Context) (Result, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return Result{}, fmt.Errorf("read fallback file %q: %w", s.path, err)
	}

	raw, err := parseHoldingsCSV(string(b), 0)
	if err != nil {
		return Result{}, fmt.Errorf("fallback file %q: %w", s.path, err)
	}

	return Result{Raw: raw, Provenance: holdings.ProvenanceLocalFile}, nil
}
