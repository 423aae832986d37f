package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	content := "line one\nline two\n\nline four\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadAll(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"line one", "line two", "", "line four"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(lines))
	}
	for i, l := range lines {
		if l != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], l)
		}
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	if _, err := ReadAll("/nonexistent/access.log"); err == nil {
		t.Error("Expected error for missing file")
	}
}
