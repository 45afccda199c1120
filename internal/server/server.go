// Package server serves the published snapshot over HTTP together with health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/division-oracle/internal/logger"
	"github.com/yourusername/division-oracle/internal/metrics"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// ErrorResponse is written for failed API requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Config holds the configuration for the snapshot server.
type Config struct {
	ServiceName  string
	Version      string
	Commit       string
	Port         int
	SnapshotPath string
	CacheTTL     time.Duration
	// MetricsPath is left unrouted when empty
	MetricsPath string
	Logger      *logrus.Logger
}

// Server serves the snapshot file read-only. It never recomputes predictions.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        int
	metricsPath string
	cache       *SnapshotCache
	server      *http.Server
	logger      *logrus.Logger
	reqLogger   *logger.ServerLogger
	mu          sync.RWMutex
	ready       bool
}

// NewServer creates a new snapshot server.
func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	reqLogger := logger.NewServerLogger(log)
	cache := NewSnapshotCache(cfg.SnapshotPath, cfg.CacheTTL)
	cache.onLoad = reqLogger.LogSnapshotLoaded

	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		metricsPath: cfg.MetricsPath,
		cache:       cache,
		logger:      log,
		reqLogger:   reqLogger,
		ready:       true,
	}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/live", s.handleLive).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)

	// Kept on the root router: method mismatches must answer 405
	r.HandleFunc("/api/predictions", s.handlePredictions).Methods(http.MethodGet)
	r.HandleFunc("/api/divisions/{key}", s.handleDivision).Methods(http.MethodGet)

	if s.metricsPath != "" {
		r.Handle(s.metricsPath, metrics.Handler()).Methods(http.MethodGet)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + strconv.Itoa(s.port),
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"port":     s.port,
			"service":  s.serviceName,
			"snapshot": s.cache.Path(),
		}).Info("Snapshot server starting")

		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("Snapshot server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// handleHealth handles the /health endpoint - basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

// handleLive handles the /live endpoint - kubernetes liveness probe.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: s.serviceName,
	})
}

// handleReady handles the /ready endpoint - checks that a valid snapshot is readable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if _, _, err := s.cache.Get(); err != nil {
		allHealthy = false
		checks["snapshot"] = "error: " + err.Error()
	} else {
		checks["snapshot"] = "ok"
	}

	response := ReadyResponse{
		Service:  s.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if allHealthy {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

// handlePredictions serves the snapshot exactly as written.
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	raw, _, err := s.cache.Get()
	if err != nil {
		s.logger.WithError(err).Warn("Snapshot unavailable")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "snapshot unavailable"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// handleDivision serves one division table.
func (s *Server) handleDivision(w http.ResponseWriter, r *http.Request) {
	_, snap, err := s.cache.Get()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "snapshot unavailable"})
		return
	}

	key := mux.Vars(r)["key"]
	division, ok := snap.Division(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown division: " + key})
		return
	}
	writeJSON(w, http.StatusOK, division)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request metrics labelled by route template and logs the request
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(route, rec.status, elapsed.Seconds())
		s.reqLogger.LogRequest(r.Method, route, rec.status, elapsed)
	})
}
