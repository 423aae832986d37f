package report

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"logsentry/internal/types"
)

// Store persists classified findings to SQLite so past runs can be inspected
// with the report subcommand or browsed through the dashboard.
type Store struct {
	db *sql.DB
}

// FindingRecord is one stored finding row.
type FindingRecord struct {
	ID       int64              `json:"id"`
	RunAt    time.Time          `json:"run_at"`
	Name     string             `json:"name"`
	Freq     int                `json:"freq"`
	Severity types.Severity     `json:"severity"`
	Matches  []*types.LogRecord `json:"matches"`
}

// Stats summarizes the stored findings for the dashboard.
type Stats struct {
	TotalRuns     int        `json:"total_runs"`
	TotalFindings int        `json:"total_findings"`
	HighCount     int        `json:"high_count"`
	MediumCount   int        `json:"medium_count"`
	TopRules      []RuleHits `json:"top_rules"`
}

// RuleHits is the accumulated frequency of one rule across runs.
type RuleHits struct {
	Name string `json:"name"`
	Hits int    `json:"hits"`
}

// NewStore opens (or creates) the findings database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_at DATETIME,
		name TEXT,
		freq INTEGER,
		severity INTEGER,
		matches TEXT
	);`
	_, err = db.Exec(query)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// SaveRun stores every finding of one analysis run under the same timestamp.
func (s *Store) SaveRun(runAt time.Time, findings []*types.Finding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO findings (run_at, name, freq, severity, matches)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range findings {
		matchesJson, _ := json.Marshal(f.Matches)

		_, err = stmt.Exec(runAt, f.Name, f.Freq, int(f.Severity), string(matchesJson))
		if err != nil {
			log.Printf("[REPORT] Failed to save finding %s: %v", f.Name, err)
		}
	}

	return tx.Commit()
}

// ListFindings returns the most recent findings, newest first.
func (s *Store) ListFindings(limit int) ([]FindingRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, run_at, name, freq, severity, matches
		FROM findings ORDER BY run_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []FindingRecord
	for rows.Next() {
		var rec FindingRecord
		var severity int
		var matchesJson string

		err = rows.Scan(&rec.ID, &rec.RunAt, &rec.Name, &rec.Freq, &severity, &matchesJson)
		if err != nil {
			continue
		}

		rec.Severity = types.Severity(severity)
		json.Unmarshal([]byte(matchesJson), &rec.Matches)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetStats aggregates the stored findings.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	row := s.db.QueryRow(`
		SELECT COUNT(DISTINCT run_at), COUNT(*),
		       COALESCE(SUM(severity = ?), 0), COALESCE(SUM(severity = ?), 0)
		FROM findings`, int(types.SeverityHigh), int(types.SeverityMedium))
	if err := row.Scan(&stats.TotalRuns, &stats.TotalFindings, &stats.HighCount, &stats.MediumCount); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT name, SUM(freq) AS hits FROM findings
		GROUP BY name ORDER BY hits DESC LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rh RuleHits
		if err := rows.Scan(&rh.Name, &rh.Hits); err != nil {
			continue
		}
		stats.TopRules = append(stats.TopRules, rh)
	}

	return stats, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
