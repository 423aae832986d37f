package dashboard

import "logsentry/internal/report"

// FindingStore is the read side the dashboard needs. *report.Store
// implements it.
type FindingStore interface {
	ListFindings(limit int) ([]report.FindingRecord, error)
	GetStats() (*report.Stats, error)
}
