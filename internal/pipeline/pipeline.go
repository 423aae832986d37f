// Package pipeline wires normalization, grouping, detection, and severity
// classification into one run over a batch of raw log lines.
package pipeline

import (
	"logsentry/internal/classify"
	"logsentry/internal/detect"
	"logsentry/internal/group"
	"logsentry/internal/parser"
	"logsentry/internal/types"
)

// Pipeline runs an ordered, fixed set of detectors over a normalized and
// grouped batch of access log lines, then classifies the findings. The
// detector list is set at construction and never changes during a run;
// findings always come back in detector registration order.
type Pipeline struct {
	detectors  []detect.Detector
	classifier *classify.Classifier
}

// New creates a pipeline with the given detectors and classifier. A nil
// classifier gets the default threshold table.
func New(detectors []detect.Detector, classifier *classify.Classifier) *Pipeline {
	if classifier == nil {
		classifier = classify.New(nil)
	}
	return &Pipeline{detectors: detectors, classifier: classifier}
}

// NewDefault creates a pipeline with the three shipped rules in their fixed
// order and the default thresholds.
func NewDefault(bruteForceThreshold int) *Pipeline {
	return New([]detect.Detector{
		detect.NewBruteForceDetector(bruteForceThreshold),
		detect.NewSQLiDetector(),
		detect.NewScanDetector(),
	}, nil)
}

// Run executes the full pipeline over raw lines: normalize each line,
// drop blanks, group by source address, run every detector, classify.
//
// The first malformed line aborts the run with its *parser.MalformedLineError;
// no partial result is returned. Callers that need resilience against bad
// lines must pre-filter their input.
func (p *Pipeline) Run(lines []string) ([]*types.Finding, error) {
	records := make([]*types.LogRecord, 0, len(lines))
	for _, line := range lines {
		rec, err := parser.Normalize(line)
		if err != nil {
			return nil, err
		}
		if rec == nil { // blank line
			continue
		}
		records = append(records, rec)
	}

	groups := group.ByAddress(records)

	findings := make([]*types.Finding, 0, len(p.detectors))
	for _, d := range p.detectors {
		findings = append(findings, d.Detect(groups))
	}

	return p.classifier.Classify(findings), nil
}
