package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logsentry/internal/types"
)

func testFindings() []*types.Finding {
	ua := "Mozilla/5.0 dirb/2.22"
	return []*types.Finding{
		{
			Name: "sql_injection",
			Freq: 11,
			Matches: []*types.LogRecord{
				{RemoteAddr: "10.0.0.1", Request: "GET /?id=1 UNION SELECT 1", Status: 200},
			},
			Severity: types.SeverityHigh,
		},
		{
			Name: "scan_pattern",
			Freq: 8,
			Matches: []*types.LogRecord{
				{RemoteAddr: "10.0.0.2", Request: "GET /admin", Status: 404, UserAgent: &ua},
			},
			Severity: types.SeverityMedium,
		},
		{Name: "brute_force", Freq: 0, Severity: types.SeverityLow},
	}
}

func TestStore_SaveAndList(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "findings.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	runAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveRun(runAt, testFindings()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	records, err := store.ListFindings(10)
	if err != nil {
		t.Fatalf("ListFindings failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	var sqli *FindingRecord
	for i := range records {
		if records[i].Name == "sql_injection" {
			sqli = &records[i]
		}
	}
	if sqli == nil {
		t.Fatal("sql_injection finding missing")
	}
	if sqli.Freq != 11 || sqli.Severity != types.SeverityHigh {
		t.Errorf("Fields lost in round trip: freq=%d severity=%s", sqli.Freq, sqli.Severity)
	}
	if len(sqli.Matches) != 1 || sqli.Matches[0].RemoteAddr != "10.0.0.1" {
		t.Errorf("Evidence lost in round trip: %+v", sqli.Matches)
	}
}

func TestStore_Stats(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "findings.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.SaveRun(time.Now().UTC(), testFindings()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalRuns != 1 {
		t.Errorf("Expected 1 run, got %d", stats.TotalRuns)
	}
	if stats.TotalFindings != 3 {
		t.Errorf("Expected 3 findings, got %d", stats.TotalFindings)
	}
	if stats.HighCount != 1 || stats.MediumCount != 1 {
		t.Errorf("Severity counts wrong: high=%d medium=%d", stats.HighCount, stats.MediumCount)
	}
	if len(stats.TopRules) == 0 || stats.TopRules[0].Name != "sql_injection" {
		t.Errorf("Expected sql_injection as top rule, got %+v", stats.TopRules)
	}
}

func TestAuditWriter_LogRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	w := NewAuditWriter(path)

	runAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := w.LogRun(runAt, testFindings()); err != nil {
		t.Fatalf("LogRun failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Audit file not written: %v", err)
	}
	defer f.Close()

	var count int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry auditEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("Line %d is not valid JSON: %v", count+1, err)
		}
		if !entry.RunAt.Equal(runAt) {
			t.Errorf("Line %d: run timestamp lost, got %v", count+1, entry.RunAt)
		}
		count++
	}
	if count != 3 {
		t.Errorf("Expected 3 audit lines, got %d", count)
	}
}
