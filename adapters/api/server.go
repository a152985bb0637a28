package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"adhypo/app"
	"adhypo/domain/core"
	"adhypo/ports"
)

// RunExecutor executes one query and publishes its artifacts
type RunExecutor interface {
	Execute(ctx context.Context, query string) (*app.RunOutcome, error)
}

// RunRequest is the body of POST /runs
type RunRequest struct {
	Query *string `json:"query"`
}

// Server exposes runs over HTTP. ledger and metrics may be nil.
type Server struct {
	router  *chi.Mux
	runs    RunExecutor
	ledger  ports.LedgerReaderPort
	metrics http.Handler
	logger  *zap.Logger
}

// NewServer creates a server with all routes registered
func NewServer(runs RunExecutor, ledger ports.LedgerReaderPort, metrics http.Handler, logger *zap.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		runs:    runs,
		ledger:  ledger,
		metrics: metrics,
		logger:  logger.Named("api"),
	}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/runs", s.handleCreateRun)
	s.router.Get("/runs", s.handleListRuns)
	s.router.Get("/runs/{id}", s.handleGetRun)

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	outcome, err := s.runs.Execute(r.Context(), *req.Query)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsFatalInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("run failed", zap.Error(err))
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, outcome)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeError(w, http.StatusServiceUnavailable, "run ledger not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := s.ledger.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeError(w, http.StatusServiceUnavailable, "run ledger not configured")
		return
	}

	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.ledger.GetRun(r.Context(), runID)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Error("get run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
