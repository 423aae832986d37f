package classify

import (
	"testing"

	"logsentry/internal/types"
)

func finding(name string, freq int) *types.Finding {
	return &types.Finding{Name: name, Freq: freq, Severity: types.SeverityLow}
}

func TestClassify_ThresholdBoundaries(t *testing.T) {
	c := New(nil)

	cases := []struct {
		freq int
		want types.Severity
	}{
		{0, types.SeverityLow},
		{1, types.SeverityLow},
		{6, types.SeverityLow},
		{7, types.SeverityMedium}, // exactly the medium threshold
		{9, types.SeverityMedium},
		{10, types.SeverityHigh}, // exactly the high threshold
		{50, types.SeverityHigh},
	}

	for _, tc := range cases {
		f := finding("sql_injection", tc.freq)
		c.Classify([]*types.Finding{f})
		if f.Severity != tc.want {
			t.Errorf("freq %d: expected %s, got %s", tc.freq, tc.want, f.Severity)
		}
	}
}

func TestClassify_ZeroFrequencySkipped(t *testing.T) {
	c := New(nil)

	f := finding("brute_force", 0)
	f.Severity = types.SeverityMedium // pre-set: must be left untouched
	c.Classify([]*types.Finding{f})
	if f.Severity != types.SeverityMedium {
		t.Errorf("Zero-frequency finding must be a no-op, got %s", f.Severity)
	}
}

func TestClassify_UnknownRuleContinues(t *testing.T) {
	c := New(nil)

	unknown := finding("port_knock", 50)
	known := finding("scan_pattern", 12)

	out := c.Classify([]*types.Finding{unknown, known})

	if len(out) != 2 {
		t.Fatalf("Expected both findings returned, got %d", len(out))
	}
	if unknown.Severity != types.SeverityLow {
		t.Errorf("Unknown rule must stay unclassified, got %s", unknown.Severity)
	}
	if known.Severity != types.SeverityHigh {
		t.Errorf("Known rule after unknown one must still classify, got %s", known.Severity)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := New(nil)

	findings := []*types.Finding{
		finding("brute_force", 8),
		finding("sql_injection", 11),
		finding("scan_pattern", 2),
	}

	c.Classify(findings)
	first := []types.Severity{findings[0].Severity, findings[1].Severity, findings[2].Severity}

	c.Classify(findings)
	for i, f := range findings {
		if f.Severity != first[i] {
			t.Errorf("Finding %s changed on second pass: %s -> %s", f.Name, first[i], f.Severity)
		}
	}
}

func TestClassify_CustomTable(t *testing.T) {
	c := New(map[string]types.Thresholds{
		"sql_injection": {Low: 1, Medium: 2, High: 3},
	})

	f := finding("sql_injection", 2)
	c.Classify([]*types.Finding{f})
	if f.Severity != types.SeverityMedium {
		t.Errorf("Expected medium with custom table, got %s", f.Severity)
	}
}
