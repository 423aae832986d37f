package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logsentry/internal/report"
)

var (
	// LinesProcessed counts raw log lines fed into the pipeline.
	LinesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logsentry_lines_processed_total",
		Help: "Total raw log lines processed",
	})

	// RunsAborted counts analysis runs aborted by a malformed line.
	RunsAborted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logsentry_runs_aborted_total",
		Help: "Total analysis runs aborted by a malformed line",
	})

	// FindingsGenerated counts non-empty findings by rule and severity.
	FindingsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logsentry_findings_total",
		Help: "Total findings generated, labeled by rule and severity",
	}, []string{"rule", "severity"})

	// RunsCompleted counts successful analysis runs.
	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logsentry_runs_completed_total",
		Help: "Total analysis runs completed",
	})
)

// StatsSource provides aggregate finding statistics for export.
// *report.Store implements it.
type StatsSource interface {
	GetStats() (*report.Stats, error)
}

// StoreCollector exports the findings store as gauges, so a long-lived
// serve process reports the persisted results of past runs rather than
// only its own (empty) run counters.
type StoreCollector struct {
	source StatsSource

	runs       *prometheus.Desc
	findings   *prometheus.Desc
	bySeverity *prometheus.Desc
	ruleHits   *prometheus.Desc
}

// NewStoreCollector creates a collector over the given stats source.
func NewStoreCollector(source StatsSource) *StoreCollector {
	return &StoreCollector{
		source: source,
		runs: prometheus.NewDesc("logsentry_stored_runs",
			"Analysis runs recorded in the findings store", nil, nil),
		findings: prometheus.NewDesc("logsentry_stored_findings",
			"Findings recorded in the findings store", nil, nil),
		bySeverity: prometheus.NewDesc("logsentry_stored_findings_by_severity",
			"Stored findings by severity", []string{"severity"}, nil),
		ruleHits: prometheus.NewDesc("logsentry_stored_rule_hits",
			"Accumulated finding frequency per rule across stored runs", []string{"rule"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.runs
	ch <- c.findings
	ch <- c.bySeverity
	ch <- c.ruleHits
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.source.GetStats()
	if err != nil {
		log.Printf("[METRICS] Failed to collect store stats: %v", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.runs, prometheus.GaugeValue, float64(stats.TotalRuns))
	ch <- prometheus.MustNewConstMetric(c.findings, prometheus.GaugeValue, float64(stats.TotalFindings))
	ch <- prometheus.MustNewConstMetric(c.bySeverity, prometheus.GaugeValue, float64(stats.HighCount), "high")
	ch <- prometheus.MustNewConstMetric(c.bySeverity, prometheus.GaugeValue, float64(stats.MediumCount), "medium")
	for _, rh := range stats.TopRules {
		ch <- prometheus.MustNewConstMetric(c.ruleHits, prometheus.GaugeValue, float64(rh.Hits), rh.Name)
	}
}

// RegisterStore adds the store-backed collector to the default registry.
func RegisterStore(source StatsSource) {
	prometheus.MustRegister(NewStoreCollector(source))
}

// StartServer exposes /metrics on the given address. Blocks.
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
