package detect

import (
	"strings"

	"logsentry/internal/types"
)

// SQLiDetector flags every record whose request line contains a SQL keyword
// as a case-sensitive substring. Frequency is the number of flagged records.
type SQLiDetector struct{}

// NewSQLiDetector creates the SQL injection rule.
func NewSQLiDetector() *SQLiDetector { return &SQLiDetector{} }

func (d *SQLiDetector) Name() string { return "sql_injection" }

// Detect implements the Detector interface. Matches keep the order records
// are encountered: groups in first-seen order, original order within a group.
func (d *SQLiDetector) Detect(groups *types.GroupedLogs) *types.Finding {
	finding := emptyFinding(d.Name())
	for _, addr := range groups.Addrs() {
		for _, rec := range groups.Records(addr) {
			if containsAny(rec.Request, sqlKeywords) {
				finding.Freq++
				finding.Matches = append(finding.Matches, rec)
			}
		}
	}
	return finding
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
