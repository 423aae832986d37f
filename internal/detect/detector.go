// Package detect holds the threat detection rules that run over grouped
// access log records.
package detect

import "logsentry/internal/types"

// Detector is one independent detection rule. Implementations are stateless
// and side-effect free: Detect reads the grouped records, never modifies
// them, and two detectors never share mutable state, so execution order has
// no influence on any detector's result.
type Detector interface {
	// Name returns the rule identifier, lowercase with underscores. It keys
	// the severity threshold table.
	Name() string

	// Detect scans the grouped records and returns the rule's aggregate
	// finding. Empty input is not an error: the finding comes back with
	// frequency 0 and no matches. Severity is left at its default; the
	// classifier assigns it afterwards.
	Detect(groups *types.GroupedLogs) *types.Finding
}

// sqlKeywords flag a request line as a SQL injection attempt when any of
// them appears as a case-sensitive substring.
var sqlKeywords = []string{
	"SELECT",
	"FROM",
	"WHERE",
	"GROUP BY",
	"HAVING",
	"ORDER BY",
	"UPDATE",
	"TABLE",
	"JOIN",
	"UNION",
}

// scanPatterns mark a user agent as belonging to a scanning tool.
var scanPatterns = []string{
	"Nmap",
	"dirb",
}

// loginMethods identify login-style requests for the brute force rule.
var loginMethods = []string{
	"POST",
}

func emptyFinding(name string) *types.Finding {
	return &types.Finding{
		Name: name,
		Freq: 0,
		// Non-nil so an unfired finding serializes as "matches": [],
		// never null.
		Matches:  []*types.LogRecord{},
		Severity: types.SeverityLow,
	}
}
