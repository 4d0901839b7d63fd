// Package http serves the validator and generator over a small JSON API,
// for editor integrations and CI jobs that do not want to link the library.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soundmesh/toolwright/internal/logging"
	"github.com/soundmesh/toolwright/pkg/domain"
)

// Engine defines the toolchain surface the HTTP adapter needs.
type Engine interface {
	ValidateSource(src string) ([]domain.ValidationReport, error)
	Generate(spec domain.ToolSpec) (string, error)
	SelfCheck(spec domain.ToolSpec) (domain.ValidationReport, error)
	RuleIndex() []domain.RuleInfo
}

// Server holds the engine and the request metrics.
type Server struct {
	Engine  Engine
	Version string
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets a structured logger for adapter diagnostics. Reports go to
// the response body; diagnostics never go to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, version string, opts ...Option) http.Handler {
	server := &Server{Engine: engine, Version: version, metrics: NewMetrics(), logger: logging.NewNop()}
	for _, opt := range opts {
		opt(server)
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/rules", server.GetRules)
		r.Post("/validate", server.Validate)
		r.Post("/generate", server.Generate)
	})
	return r
}

// ValidateRequest is the POST /api/validate body.
type ValidateRequest struct {
	Source string `json:"source"`
}

// ValidateResponse carries one report per extracted tool. Extraction
// failures for individual units are reported without failing the batch.
type ValidateResponse struct {
	Reports []domain.ValidationReport `json:"reports"`
	Error   string                    `json:"error,omitempty"`
}

// Validate handles the POST /api/validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Source == "" {
		http.Error(w, "Missing source", http.StatusBadRequest)
		return
	}

	reports, err := s.Engine.ValidateSource(body.Source)
	if reports == nil && err != nil {
		s.metrics.Validations.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("Validate error: %v", err), http.StatusUnprocessableEntity)
		return
	}

	resp := ValidateResponse{Reports: reports}
	if err != nil {
		resp.Error = err.Error()
	}
	for _, rep := range reports {
		if rep.OverallPassed {
			s.metrics.Validations.WithLabelValues("pass").Inc()
		} else {
			s.metrics.Validations.WithLabelValues("fail").Inc()
		}
	}
	s.writeJSON(w, resp)
}

// GenerateRequest is the POST /api/generate body.
type GenerateRequest struct {
	Spec domain.ToolSpec `json:"spec"`
}

// GenerateResponse carries the emitted source and its self-check report.
type GenerateResponse struct {
	Source string                  `json:"source"`
	Report domain.ValidationReport `json:"report"`
}

// Generate handles the POST /api/generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	src, err := s.Engine.Generate(body.Spec)
	if err != nil {
		s.metrics.Generations.WithLabelValues("rejected").Inc()
		http.Error(w, fmt.Sprintf("Generate error: %v", err), http.StatusUnprocessableEntity)
		return
	}

	report, err := s.Engine.SelfCheck(body.Spec)
	if err != nil {
		http.Error(w, fmt.Sprintf("Self-check error: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.Generations.WithLabelValues("emitted").Inc()
	s.writeJSON(w, GenerateResponse{Source: src, Report: report})
}

// GetRules handles the GET /api/rules request.
func (s *Server) GetRules(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Engine.RuleIndex())
}

// Health handles the GET /healthz request.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"status":  "ok",
		"version": s.Version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
