package detect

import "logsentry/internal/types"

// ScanDetector flags records whose user agent betrays a scanning tool
// (Nmap probes, dirb directory sweeps). An absent user agent never matches.
type ScanDetector struct{}

// NewScanDetector creates the scan pattern rule.
func NewScanDetector() *ScanDetector { return &ScanDetector{} }

func (d *ScanDetector) Name() string { return "scan_pattern" }

// Detect implements the Detector interface.
func (d *ScanDetector) Detect(groups *types.GroupedLogs) *types.Finding {
	finding := emptyFinding(d.Name())
	for _, addr := range groups.Addrs() {
		for _, rec := range groups.Records(addr) {
			if rec.UserAgent == nil {
				continue
			}
			if containsAny(*rec.UserAgent, scanPatterns) {
				finding.Freq++
				finding.Matches = append(finding.Matches, rec)
			}
		}
	}
	return finding
}
