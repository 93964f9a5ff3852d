// Package status persists the two small per-run artifacts downstream
// consumers poll: the NAV-or-ERROR result string and the provenance of the
// holdings source used. Writes are best-effort; a failure is a warning,
// never fatal to the run.
package status

import (
	"log/slog"
	"os"
)

// SourceError is written to the source file when ingestion failed entirely.
const SourceError = "Error"

// Sink writes the run's status artifacts.
type Sink struct {
	resultFile string
	sourceFile string
}

// New creates a sink writing to the given paths.
func New(resultFile, sourceFile string) *Sink {
	return &Sink{resultFile: resultFile, sourceFile: sourceFile}
}

// WriteResult persists the NAV result string (a 4-decimal NAV or "ERROR").
func (s *Sink) WriteResult(content string) {
	s.write(s.resultFile, content)
}

// WriteSource persists the provenance tag of the holdings source used.
func (s *Sink) WriteSource(content string) {
	s.write(s.sourceFile, content)
}

func (s *Sink) write(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		slog.Warn("could not write status file", "file", path, "error", err)
	}
}
