package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Resolve tries sources in order and returns the first success. A fatal
// source error aborts the chain immediately; a recoverable one is logged
// and the next source is tried. Exhausting the chain is itself fatal; no
// partial table is ever returned.
func Resolve(ctx context.Context, sources []Source) (Result, error) {
	if len(sources) == 0 {
		return Result{}, errors.New("no holdings sources configured")
	}

	var failures []error
	for _, s := range sources {
		res, err := s.Fetch(ctx)
		if err == nil {
			slog.Info("holdings table resolved", "source", s.Name(), "provenance", res.Provenance, "rows", len(res.Raw.Records))
			return res, nil
		}
		if IsFatal(err) {
			return Result{}, fmt.Errorf("%s: %w", s.Name(), err)
		}
		slog.Warn("holdings source failed, trying next", "source", s.Name(), "error", err)
		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
	}

	return Result{}, fmt.Errorf("all holdings sources failed: %w", errors.Join(failures...))
}
