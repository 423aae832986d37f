package detect

import (
	"strings"

	"logsentry/internal/types"
)

// DefaultBruteForceThreshold is how many distinct offending addresses must
// be seen before the rule fires.
const DefaultBruteForceThreshold = 5

// BruteForceDetector flags widespread failed login activity. A record
// qualifies when its request line carries a login-style method (POST) and
// its status code is not 200. The rule fires once the number of distinct
// addresses with at least one qualifying record exceeds the threshold.
//
// The tally is computed over the whole input before any evidence is
// collected: when the rule fires, every qualifying record from every
// offending address is emitted, in first-seen address order. (A running
// tally that appends evidence as it crosses the threshold would make the
// evidence set depend on address iteration order.)
type BruteForceDetector struct {
	Threshold int // distinct offending addresses; 0 means DefaultBruteForceThreshold
}

// NewBruteForceDetector creates the rule with the given distinct-address
// threshold, falling back to the default when threshold is <= 0.
func NewBruteForceDetector(threshold int) *BruteForceDetector {
	if threshold <= 0 {
		threshold = DefaultBruteForceThreshold
	}
	return &BruteForceDetector{Threshold: threshold}
}

func (d *BruteForceDetector) Name() string { return "brute_force" }

// Detect implements the Detector interface.
func (d *BruteForceDetector) Detect(groups *types.GroupedLogs) *types.Finding {
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = DefaultBruteForceThreshold
	}

	var offenders []string
	qualifying := make(map[string][]*types.LogRecord)

	for _, addr := range groups.Addrs() {
		for _, rec := range groups.Records(addr) {
			if !failedLogin(rec) {
				continue
			}
			if _, seen := qualifying[addr]; !seen {
				offenders = append(offenders, addr)
			}
			qualifying[addr] = append(qualifying[addr], rec)
		}
	}

	if len(offenders) <= threshold {
		return emptyFinding(d.Name())
	}

	finding := emptyFinding(d.Name())
	finding.Freq = len(offenders)
	for _, addr := range offenders {
		finding.Matches = append(finding.Matches, qualifying[addr]...)
	}
	return finding
}

func failedLogin(rec *types.LogRecord) bool {
	if rec.Status == 200 {
		return false
	}
	for _, method := range loginMethods {
		if strings.Contains(rec.Request, method) {
			return true
		}
	}
	return false
}
