package dashboard

import (
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
)

//go:embed templates/*
var templatesFS embed.FS

// Server serves a read-only view over stored findings: an HTML summary page
// and JSON endpoints for tooling. It never ingests or reanalyzes anything.
type Server struct {
	store     FindingStore
	templates *template.Template
	addr      string
}

// NewServer creates a new dashboard server
func NewServer(store FindingStore, addr string) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		store:     store,
		templates: tmpl,
		addr:      addr,
	}, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Web UI
	mux.HandleFunc("/", s.handleDashboard)

	// API endpoints
	mux.HandleFunc("/api/v1/findings", s.handleAPIFindings)
	mux.HandleFunc("/api/v1/stats", s.handleAPIStats)

	log.Printf("[DASHBOARD] Starting on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// handleDashboard renders the main dashboard page
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	findings, _ := s.store.ListFindings(100)
	stats, _ := s.store.GetStats()

	data := map[string]interface{}{
		"Findings": findings,
		"Stats":    stats,
	}

	s.templates.ExecuteTemplate(w, "dashboard.html", data)
}

// handleAPIFindings returns stored findings as JSON
func (s *Server) handleAPIFindings(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit := 100
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	findings, err := s.store.ListFindings(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(findings)
}

// handleAPIStats returns statistics as JSON
func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
