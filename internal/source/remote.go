package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/holdings"
)

// RemoteCSVSource downloads the published holdings CSV. The publisher
// prepends a fixed number of metadata lines before the real header; those
// are stripped before parsing.
type RemoteCSVSource struct {
	url           string
	metadataLines int
	strictColumns bool
	client        *resty.Client
}

// NewRemoteCSVSource creates a remote CSV source. With strictColumns set,
// missing required columns are fatal instead of triggering a fallback; the
// CSV-only run mode has no other holdings source worth trusting over a
// structurally wrong download.
func NewRemoteCSVSource(url, userAgent string, timeout time.Duration, metadataLines int, strictColumns bool) *RemoteCSVSource {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)

	return &RemoteCSVSource{
		url:           url,
		metadataLines: metadataLines,
		strictColumns: strictColumns,
		client:        client,
	}
}

// Name identifies the source in logs.
func (s *RemoteCSVSource) Name() string {
	return "remote csv"
}

// Fetch downloads, decodes, and parses the holdings CSV.
func (s *RemoteCSVSource) Fetch(ctx context.Context) (Result, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)

	if err != nil {
		return Result{}, fmt.Errorf("fetch holdings csv: %w", err)
	}
	if !resp.IsSuccess() {
		return Result{}, fmt.Errorf("holdings csv endpoint returned status %d", resp.StatusCode())
	}

	raw, err := parseHoldingsCSV(decodeText(resp.Bytes()), s.metadataLines)
	if err != nil {
		return Result{}, err
	}

	if s.strictColumns {
		if missing := raw.MissingColumns(); len(missing) > 0 {
			return Result{}, fatalf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
		}
	}

	return Result{Raw: raw, Provenance: holdings.ProvenanceURL}, nil
}
