package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"logsentry/internal/types"
)

// AuditWriter appends classified findings to a JSON-lines audit file.
type AuditWriter struct {
	mu       sync.Mutex
	filePath string
}

// auditEntry is one line of the audit file.
type auditEntry struct {
	RunAt   time.Time      `json:"run_at"`
	Finding *types.Finding `json:"finding"`
}

// NewAuditWriter creates a writer for the given path. The file is created
// on first write.
func NewAuditWriter(filePath string) *AuditWriter {
	return &AuditWriter{
		filePath: filePath,
	}
}

// LogRun writes every finding of a run to the audit file in a thread-safe
// manner.
func (w *AuditWriter) LogRun(runAt time.Time, findings []*types.Finding) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, finding := range findings {
		if err := encoder.Encode(auditEntry{RunAt: runAt, Finding: finding}); err != nil {
			return fmt.Errorf("failed to encode finding: %w", err)
		}
	}

	return nil
}
