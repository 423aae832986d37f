package types

import "fmt"

// Severity is an ordinal rank assigned to a finding. The underlying values
// are signed so the labels can be treated numerically downstream (ranking,
// future scoring) and so a rank below LOW remains representable.
type Severity int

const (
	SeverityLow    Severity = -1
	SeverityMedium Severity = 0
	SeverityHigh   Severity = 1
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalJSON emits the label instead of the raw rank.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the label form produced by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"low"`:
		*s = SeverityLow
	case `"medium"`:
		*s = SeverityMedium
	case `"high"`:
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %s", data)
	}
	return nil
}

// LogRecord is one normalized combined-format access log entry.
// Optional fields are nil when the raw line carried the "-" placeholder.
// Records are never mutated after construction.
type LogRecord struct {
	RemoteAddr    string  `json:"remote_addr"`
	RemoteUser    *string `json:"remote_user,omitempty"`
	TimeLocal     string  `json:"time_local"`
	Timestamp     string  `json:"timestamp"` // time_local as ISO-8601, offset preserved
	Request       string  `json:"request"`
	Status        int     `json:"status"`
	BodyBytesSent *int    `json:"body_bytes_sent,omitempty"`
	Referer       *string `json:"http_referer,omitempty"`
	UserAgent     *string `json:"http_user_agent,omitempty"`
}

// GroupedLogs partitions records by source address while preserving both the
// per-address record order and the first-seen order of the addresses
// themselves. Plain map iteration is randomized in Go, which would make
// detector evidence ordering nondeterministic, so the key order is tracked
// explicitly.
type GroupedLogs struct {
	addrs   []string
	records map[string][]*LogRecord
}

// NewGroupedLogs returns an empty grouping.
func NewGroupedLogs() *GroupedLogs {
	return &GroupedLogs{records: make(map[string][]*LogRecord)}
}

// Add appends a record to its address group, registering the address on
// first sight.
func (g *GroupedLogs) Add(rec *LogRecord) {
	if _, ok := g.records[rec.RemoteAddr]; !ok {
		g.addrs = append(g.addrs, rec.RemoteAddr)
	}
	g.records[rec.RemoteAddr] = append(g.records[rec.RemoteAddr], rec)
}

// Addrs returns the source addresses in first-seen order.
func (g *GroupedLogs) Addrs() []string {
	return g.addrs
}

// Records returns the records for one address in original input order.
func (g *GroupedLogs) Records(addr string) []*LogRecord {
	return g.records[addr]
}

// Len returns the number of distinct addresses.
func (g *GroupedLogs) Len() int {
	return len(g.addrs)
}

// Finding is the aggregate result of one detection rule over a grouped run.
// Severity starts at SeverityLow and is raised in place by the classifier;
// no other component writes to it.
type Finding struct {
	Name     string       `json:"name"`
	Freq     int          `json:"freq"`
	Matches  []*LogRecord `json:"matches"`
	Severity Severity     `json:"severity"`
}

// Thresholds holds the per-rule frequency boundaries for severity
// classification. Low is carried for documentation and future scoring but is
// not compared against: frequencies below Medium stay at SeverityLow.
type Thresholds struct {
	Low    int `yaml:"low"`
	Medium int `yaml:"medium"`
	High   int `yaml:"high"`
}

// RuleThresholds is a named threshold entry in the config file.
type RuleThresholds struct {
	Name       string `yaml:"name"`
	Thresholds `yaml:",inline"`
}

// Config represents the application configuration.
type Config struct {
	Input struct {
		AccessLogPath string `yaml:"access_log_path"`
	} `yaml:"input"`

	Detection struct {
		BruteForceThreshold int              `yaml:"brute_force_threshold"` // distinct offending addresses
		Rules               []RuleThresholds `yaml:"rules"`
	} `yaml:"detection"`

	Report struct {
		DBPath       string `yaml:"db_path"`
		AuditLogPath string `yaml:"audit_log_path"`
	} `yaml:"report"`

	Dashboard struct {
		Addr string `yaml:"addr"`
	} `yaml:"dashboard"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
}

// ThresholdTable flattens the configured rule entries into a lookup map for
// the classifier.
func (c *Config) ThresholdTable() map[string]Thresholds {
	table := make(map[string]Thresholds, len(c.Detection.Rules))
	for _, r := range c.Detection.Rules {
		table[r.Name] = r.Thresholds
	}
	return table
}
