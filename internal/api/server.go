// Package api provides the HTTP API for observing simulation runs.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zandis/emergence/internal/particle"
	"github.com/zandis/emergence/internal/persistence"
	"github.com/zandis/emergence/internal/pool"
)

// Server serves pool and run state over HTTP.
type Server struct {
	Pool     *pool.Pool
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	started time.Time
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.started = time.Now()

	// Submissions are rate limited per client to keep the queue fair.
	submitLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/runs", s.handleRuns)
	mux.HandleFunc("/api/v1/run/", s.handleRunDetail)
	mux.HandleFunc("/api/v1/active", s.handleActive)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/submit", s.adminOnly(RateLimitMiddleware(submitLimiter, s.handleSubmit)))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// handleStatus reports pool counters and storage totals.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Pool.Stats()

	total, forced := 0, 0
	if s.DB != nil {
		if t, f, err := s.DB.CountRuns(); err == nil {
			total, forced = t, f
		}
	}

	writeJSON(w, map[string]any{
		"uptime":       time.Since(s.started).Round(time.Second).String(),
		"pool":         stats,
		"stored_runs":  total,
		"forced_runs":  forced,
		"stored_human": humanize.Comma(int64(total)),
	})
}

// handleRuns lists recent stored runs. ?limit=N caps the result (default
// 50, max 500).
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "storage disabled", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}

	runs, err := s.DB.RecentRuns(limit)
	if err != nil {
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"runs": runs})
}

// handleRunDetail returns a full configuration: GET /api/v1/run/:id.
func (s *Server) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "storage disabled", http.StatusServiceUnavailable)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/run/")
	if id == "" {
		http.Error(w, "missing run id", http.StatusBadRequest)
		return
	}

	cfg, err := s.DB.LoadConfiguration(id)
	if err == persistence.ErrNotFound {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, cfg)
}

// handleActive returns mid-run metric snapshots for in-flight simulations.
func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"active": s.Pool.ActiveSnapshots()})
}

// submitRequest is the admin submission body. Concentrations are keyed by
// particle type name; a missing seed selects snowflake mode.
type submitRequest struct {
	Concentrations map[string]float64 `json:"concentrations"`
	Seed           *int64             `json:"seed,omitempty"`
}

// handleSubmit enqueues a simulation run.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	concentrations := make(map[particle.Type]float64, len(req.Concentrations))
	for name, c := range req.Concentrations {
		t, err := particle.ParseType(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		concentrations[t] = c
	}

	id, err := s.Pool.Submit(pool.Job{Concentrations: concentrations, Seed: req.Seed})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]any{"id": id}); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no EMERGENCE_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}
