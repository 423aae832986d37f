package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"logsentry/internal/classify"
	"logsentry/internal/config"
	"logsentry/internal/dashboard"
	"logsentry/internal/detect"
	"logsentry/internal/ingest"
	"logsentry/internal/metrics"
	"logsentry/internal/parser"
	"logsentry/internal/pipeline"
	"logsentry/internal/report"
	"logsentry/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze":
		analyzeCommand(os.Args[2:])
	case "report":
		reportCommand(os.Args[2:])
	case "serve":
		serveCommand(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: logsentry <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  analyze   Run threat detection over an access log file")
	fmt.Println("  report    Print findings stored from past runs")
	fmt.Println("  serve     Start the findings dashboard")
}

// loadConfig resolves the effective configuration: the file when given,
// built-in defaults otherwise.
func loadConfig(path string) *types.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func analyzeCommand(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	filePath := fs.String("file", "", "Access log file (overrides config)")
	noStore := fs.Bool("no-store", false, "Skip persisting findings")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *filePath != "" {
		cfg.Input.AccessLogPath = *filePath
	}

	fmt.Printf("Analyzing %s...\n", cfg.Input.AccessLogPath)

	// Expose the run counters while the analysis is in flight.
	if cfg.Metrics.Enabled {
		go func() {
			log.Printf("[METRICS] Starting on %s", cfg.Metrics.Addr)
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				log.Printf("[METRICS] Failed to start: %v", err)
			}
		}()
	}

	lines, err := ingest.ReadAll(cfg.Input.AccessLogPath)
	if err != nil {
		log.Fatalf("Failed to read log file: %v", err)
	}
	metrics.LinesProcessed.Add(float64(len(lines)))

	p := pipeline.New([]detect.Detector{
		detect.NewBruteForceDetector(cfg.Detection.BruteForceThreshold),
		detect.NewSQLiDetector(),
		detect.NewScanDetector(),
	}, classify.New(cfg.ThresholdTable()))

	runAt := time.Now().UTC()
	findings, err := p.Run(lines)
	if err != nil {
		var malformed *parser.MalformedLineError
		if errors.As(err, &malformed) {
			metrics.RunsAborted.Inc()
			log.Fatalf("Aborting: %v (pre-filter the file if a few bad lines are expected)", malformed)
		}
		log.Fatalf("Analysis failed: %v", err)
	}
	metrics.RunsCompleted.Inc()

	printFindings(findings)

	for _, f := range findings {
		if f.Freq > 0 {
			metrics.FindingsGenerated.WithLabelValues(f.Name, f.Severity.String()).Inc()
		}
	}

	auditWriter := report.NewAuditWriter(cfg.Report.AuditLogPath)
	if err := auditWriter.LogRun(runAt, findings); err != nil {
		log.Printf("Failed to write to audit log: %v", err)
	}

	if !*noStore {
		store, err := report.NewStore(cfg.Report.DBPath)
		if err != nil {
			log.Printf("[REPORT] Failed to open store: %v", err)
			return
		}
		defer store.Close()
		if err := store.SaveRun(runAt, findings); err != nil {
			log.Printf("[REPORT] Failed to save run: %v", err)
		}
	}
}

func printFindings(findings []*types.Finding) {
	for _, f := range findings {
		fmt.Printf("\n[FINDING] Rule: %s | Severity: %s | Freq: %d\n", f.Name, f.Severity, f.Freq)
		for i, rec := range f.Matches {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(f.Matches)-i)
				break
			}
			fmt.Printf("  %s\n", sanitize(parser.CombinedLine(rec)))
		}
	}
}

func reportCommand(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	limit := fs.Int("limit", 50, "Maximum findings to print")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	store, err := report.NewStore(cfg.Report.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	records, err := store.ListFindings(*limit)
	if err != nil {
		log.Fatalf("Failed to list findings: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No stored findings. Run 'logsentry analyze' first.")
		return
	}

	for _, rec := range records {
		fmt.Printf("%s  %-14s freq=%-4d severity=%-6s evidence=%d\n",
			rec.RunAt.Format(time.RFC3339), rec.Name, rec.Freq, rec.Severity, len(rec.Matches))
	}
}

func serveCommand(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	addr := fs.String("addr", "", "Dashboard listen address (overrides config)")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *addr != "" {
		cfg.Dashboard.Addr = *addr
	}

	store, err := report.NewStore(cfg.Report.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if cfg.Metrics.Enabled {
		// Export what past runs persisted, not this process's own counters.
		metrics.RegisterStore(store)
		go func() {
			log.Printf("[METRICS] Starting on %s", cfg.Metrics.Addr)
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				log.Printf("[METRICS] Failed to start: %v", err)
			}
		}()
	}

	srv, err := dashboard.NewServer(store, cfg.Dashboard.Addr)
	if err != nil {
		log.Fatalf("Failed to create dashboard: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("Dashboard failed: %v", err)
	}
}

// sanitize strips control characters (except newline) to prevent terminal injection
func sanitize(s string) string {
	var builder strings.Builder
	for _, r := range s {
		// Allow printable characters, newline, and tab
		if r >= 32 || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
