// Package ingest supplies raw log lines to the analysis pipeline. File
// access lives here so the pipeline itself never touches I/O.
package ingest

import (
	"fmt"

	"github.com/nxadm/tail"
)

// ReadAll reads one access log file from start to EOF and returns its lines
// in file order. The file must exist; an unreadable file is the caller's
// problem to surface, not something to silently skip.
func ReadAll(path string) ([]string, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer t.Cleanup()

	var lines []string
	for line := range t.Lines {
		if line.Err != nil {
			return nil, fmt.Errorf("failed reading %s: %w", path, line.Err)
		}
		lines = append(lines, line.Text)
	}

	return lines, nil
}
