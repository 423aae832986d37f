// Package classify assigns severity labels to detection findings based on
// per-rule frequency thresholds.
package classify

import (
	"log"

	"logsentry/internal/types"
)

// DefaultThresholds returns the built-in threshold table: (5, 7, 10) for
// every shipped rule.
func DefaultThresholds() map[string]types.Thresholds {
	return map[string]types.Thresholds{
		"brute_force":   {Low: 5, Medium: 7, High: 10},
		"sql_injection": {Low: 5, Medium: 7, High: 10},
		"scan_pattern":  {Low: 5, Medium: 7, High: 10},
	}
}

// Classifier maps finding frequencies to severity ranks.
type Classifier struct {
	thresholds map[string]types.Thresholds
}

// New creates a classifier with the given threshold table. A nil table
// falls back to DefaultThresholds.
func New(thresholds map[string]types.Thresholds) *Classifier {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	return &Classifier{thresholds: thresholds}
}

// Classify raises each finding's severity in place and returns the same
// slice. Frequency at or above the high threshold is high severity, at or
// above the medium threshold is medium; everything below stays at the
// default low rank (the low threshold is carried in the table but not
// compared against).
//
// A finding with frequency <= 0 is left untouched. A rule name missing from
// the table is logged and skipped; the remaining findings still classify.
// Reclassifying an already classified slice with the same table is a no-op.
func (c *Classifier) Classify(findings []*types.Finding) []*types.Finding {
	for _, f := range findings {
		if f.Freq <= 0 {
			continue
		}

		th, ok := c.thresholds[f.Name]
		if !ok {
			log.Printf("[CLASSIFY] Skipping unknown rule %q (freq %d)", f.Name, f.Freq)
			continue
		}

		switch {
		case f.Freq >= th.High:
			f.Severity = types.SeverityHigh
		case f.Freq >= th.Medium:
			f.Severity = types.SeverityMedium
		}
	}
	return findings
}
