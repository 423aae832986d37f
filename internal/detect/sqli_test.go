package detect

import (
	"testing"

	"logsentry/internal/group"
	"logsentry/internal/types"
)

func TestSQLi_UnionSelect(t *testing.T) {
	d := NewSQLiDetector()

	records := []*types.LogRecord{
		{RemoteAddr: "10.0.0.1", Request: "GET /?id=1 UNION SELECT password FROM users", Status: 200},
	}

	finding := d.Detect(group.ByAddress(records))
	if finding.Name != "sql_injection" {
		t.Errorf("Expected rule name 'sql_injection', got '%s'", finding.Name)
	}
	if finding.Freq != 1 {
		t.Fatalf("Expected freq 1, got %d", finding.Freq)
	}
	if len(finding.Matches) != 1 || finding.Matches[0] != records[0] {
		t.Errorf("Expected the flagged record as evidence, got %+v", finding.Matches)
	}
}

func TestSQLi_CaseSensitive(t *testing.T) {
	d := NewSQLiDetector()

	records := []*types.LogRecord{
		{RemoteAddr: "10.0.0.1", Request: "GET /?q=select * from users", Status: 200},
	}

	finding := d.Detect(group.ByAddress(records))
	if finding.Freq != 0 {
		t.Errorf("Lowercase keywords must not match, got freq %d", finding.Freq)
	}
}

func TestSQLi_CountsEveryMatch(t *testing.T) {
	d := NewSQLiDetector()

	records := []*types.LogRecord{
		{RemoteAddr: "10.0.0.1", Request: "GET /?q=DROP TABLE users", Status: 200},
		{RemoteAddr: "10.0.0.1", Request: "GET /about HTTP/1.1", Status: 200},
		{RemoteAddr: "10.0.0.2", Request: "GET /?sort=ORDER BY 1", Status: 200},
		{RemoteAddr: "10.0.0.3", Request: "GET /?q=1 OR 1=1", Status: 200},
	}

	finding := d.Detect(group.ByAddress(records))
	if finding.Freq != 2 {
		t.Fatalf("Expected freq 2, got %d", finding.Freq)
	}
	if finding.Matches[0].RemoteAddr != "10.0.0.1" || finding.Matches[1].RemoteAddr != "10.0.0.2" {
		t.Errorf("Matches out of encounter order: %+v", finding.Matches)
	}
}

func TestSQLi_EmptyInput(t *testing.T) {
	d := NewSQLiDetector()
	finding := d.Detect(group.ByAddress(nil))
	if finding.Freq != 0 || len(finding.Matches) != 0 {
		t.Errorf("Expected empty finding on empty input, got %+v", finding)
	}
	if finding.Severity != types.SeverityLow {
		t.Errorf("Expected default low severity, got %s", finding.Severity)
	}
}
