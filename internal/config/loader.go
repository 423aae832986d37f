package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"logsentry/internal/detect"
	"logsentry/internal/types"
)

// Default returns the configuration used when no file is given: the three
// shipped rules at (5, 7, 10) and report output next to the binary.
func Default() *types.Config {
	var cfg types.Config
	validateConfig(&cfg)
	return &cfg
}

// LoadConfig reads the configuration from the given path
func LoadConfig(path string) (*types.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg types.Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	validateConfig(&cfg)
	return &cfg, nil
}

// validateConfig applies defaults and hard rules
func validateConfig(cfg *types.Config) {
	if cfg.Input.AccessLogPath == "" {
		cfg.Input.AccessLogPath = "/var/log/nginx/access.log"
	}
	if cfg.Detection.BruteForceThreshold <= 0 {
		cfg.Detection.BruteForceThreshold = detect.DefaultBruteForceThreshold
	}

	// Any shipped rule missing from the file gets the built-in thresholds.
	configured := make(map[string]bool, len(cfg.Detection.Rules))
	for _, r := range cfg.Detection.Rules {
		configured[r.Name] = true
	}
	for _, name := range []string{"brute_force", "sql_injection", "scan_pattern"} {
		if !configured[name] {
			cfg.Detection.Rules = append(cfg.Detection.Rules, types.RuleThresholds{
				Name:       name,
				Thresholds: types.Thresholds{Low: 5, Medium: 7, High: 10},
			})
		}
	}

	if cfg.Report.DBPath == "" {
		cfg.Report.DBPath = "logsentry.db"
	}
	if cfg.Report.AuditLogPath == "" {
		cfg.Report.AuditLogPath = "audit.log"
	}
	if cfg.Dashboard.Addr == "" {
		cfg.Dashboard.Addr = ":8080"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
}
