package status

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSink_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	resultFile := filepath.Join(dir, "nav_result.txt")
	sourceFile := filepath.Join(dir, "source_used.txt")

	sink := New(resultFile, sourceFile)
	sink.WriteResult("15.5000")
	sink.WriteSource("URL")

	result, err := os.ReadFile(resultFile)
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}
	if string(result) != "15.5000" {
		t.Errorf("result file = %q, want %q", result, "15.5000")
	}

	src, err := os.ReadFile(sourceFile)
	if err != nil {
		t.Fatalf("read source file: %v", err)
	}
	if string(src) != "URL" {
		t.Errorf("source file = %q, want %q", src, "URL")
	}
}

func TestSink_OverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	resultFile := filepath.Join(dir, "nav_result.txt")

	sink := New(resultFile, filepath.Join(dir, "source_used.txt"))
	sink.WriteResult("15.5000")
	sink.WriteResult("ERROR")

	result, err := os.ReadFile(resultFile)
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}
	if string(result) != "ERROR" {
		t.Errorf("result file = %q, want %q", result, "ERROR")
	}
}

// A write failure must not panic or abort the run.
func TestSink_UnwritablePathIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	sink := New(filepath.Join(dir, "missing", "nested", "nav_result.txt"), filepath.Join(dir, "missing", "source.txt"))

	sink.WriteResult("ERROR")
	sink.WriteSource("Error")
}
