// Package http exposes the REST surface of the climate-watch API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/observability"
	"github.com/savannawatch/climate-watch-api/internal/report"
)

// ReportService is the intake/verification service consumed by the handlers.
type ReportService interface {
	Submit(ctx context.Context, p domain.SubmitParams) (report.SubmitResult, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Report, error)
	Verify(ctx context.Context, id uuid.UUID) (report.VerificationOutcome, error)
	List(ctx context.Context, f report.Filters) ([]domain.Report, error)
	Summarize(ctx context.Context, countyID, days int) (report.Stats, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the report API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	service    ReportService
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with all report routes registered.
func NewServer(addr string, service ReportService, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("POST /reports", s.instrument("/reports", s.handleSubmit))
	mux.HandleFunc("GET /reports", s.instrument("/reports", s.handleList))
	mux.HandleFunc("GET /reports/stats/summary", s.instrument("/reports/stats/summary", s.handleStats))
	mux.HandleFunc("GET /reports/{id}", s.instrument("/reports/{id}", s.handleGet))
	mux.HandleFunc("POST /reports/{id}/verify", s.instrument("/reports/{id}/verify", s.handleVerify))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// instrument records request duration by route, method, and status.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}

// writeError maps a service error to an HTTP status with a caller-safe
// detail message. Internal details are logged, never exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)

	var status int
	switch code {
	case domain.EINVALID:
		status = http.StatusBadRequest
	case domain.ENOTFOUND:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, map[string]string{"detail": domain.ErrorMessage(err)})
}
