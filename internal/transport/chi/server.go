// Package chi exposes the search engine over HTTP. Handlers validate and
// translate; all semantics live in the usecase layer.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/intent"
	"github.com/talent-cloud/resumedex/internal/domain/query"
	"github.com/talent-cloud/resumedex/internal/domain/session"
	followupuc "github.com/talent-cloud/resumedex/internal/usecase/followup"
	healthuc "github.com/talent-cloud/resumedex/internal/usecase/health"
	searchuc "github.com/talent-cloud/resumedex/internal/usecase/search"
)

// Error response codes.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeSessionNotFound      errorCode = "session_not_found"
	codeRateLimited          errorCode = "rate_limited"
	codeRetrievalUnavailable errorCode = "retrieval_unavailable"
	codeEmbeddingProvider    errorCode = "embedding_provider_error"
	codeInternalError        errorCode = "internal_error"
)

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, req query.Request) (searchuc.Result, error)
}

// SessionStore persists frozen search contexts.
type SessionStore interface {
	Save(ctx context.Context, sc session.Context) error
	Get(ctx context.Context, id string) (session.Context, error)
	Delete(ctx context.Context, id string) error
}

// Reasoner answers follow-up questions over a frozen context.
type Reasoner interface {
	Answer(sc session.Context, question string) followupuc.Answer
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	search        Searcher
	sessions      SessionStore
	followup      Reasoner
	health        HealthChecker
	maxTopK       int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	sessions SessionStore,
	followup Reasoner,
	health HealthChecker,
	maxTopK int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		sessions: sessions,
		followup: followup,
		health:   health,
		maxTopK:  maxTopK,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrRetrievalUnavailable, http.StatusServiceUnavailable, codeRetrievalUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrEmbeddingConfig, http.StatusInternalServerError, codeInternalError),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/sessions", s.CreateSession)
		r.Get("/sessions/{id}", s.GetSession)
		r.Delete("/sessions/{id}", s.DeleteSession)
		r.Post("/sessions/{id}/followup", s.Followup)
	})
}

type filtersDTO struct {
	Skills   []string `json:"skills,omitempty"`
	MinYears float64  `json:"min_years,omitempty"`
	Location string   `json:"location,omitempty"`
}

type searchRequest struct {
	Query   string     `json:"query"`
	TopK    int        `json:"top_k,omitempty"`
	Filters filtersDTO `json:"filters,omitempty"`
}

type timingsDTO struct {
	Analyze  float64 `json:"analyze"`
	Retrieve float64 `json:"retrieve"`
	Rerank   float64 `json:"rerank"`
}

type searchResponse struct {
	SessionID string            `json:"session_id,omitempty"`
	Results   []candidate.Match `json:"results"`
	Total     int               `json:"total_results"`
	Expanded  string            `json:"expanded_query"`
	Intent    intent.Intent     `json:"intent"`
	Variants  []string          `json:"variants_used"`
	Pooled    int               `json:"pooled_candidates"`
	Timings   timingsDTO        `json:"timings_ms"`
}

type sessionResponse struct {
	SessionID string            `json:"session_id"`
	Query     string            `json:"query"`
	CreatedAt time.Time         `json:"created_at"`
	Total     int               `json:"total_results"`
	Results   []candidate.Match `json:"results"`
}

type followupRequest struct {
	Question string `json:"question"`
}

type followupResponse struct {
	SessionID string `json:"session_id"`
	Archetype string `json:"archetype"`
	Answer    string `json:"answer"`
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runSearch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, searchResultToResponse(res, ""))
}

// CreateSession handles POST /api/v1/sessions: runs a search and freezes its
// results for follow-up questions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runSearch(w, r)
	if !ok {
		return
	}

	sc := session.Context{
		ID:           uuid.NewString(),
		Query:        res.rawQuery,
		Matches:      res.result.Matches,
		TotalResults: len(res.result.Matches),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Save(r.Context(), sc); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/sessions/"+sc.ID)
	writeJSON(w, http.StatusCreated, searchResultToResponse(res, sc.ID))
}

// GetSession handles GET /api/v1/sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sc, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sc.ID,
		Query:     sc.Query,
		CreatedAt: sc.CreatedAt,
		Total:     sc.TotalResults,
		Results:   sc.Matches,
	})
}

// DeleteSession handles DELETE /api/v1/sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Followup handles POST /api/v1/sessions/{id}/followup.
func (s *Server) Followup(w http.ResponseWriter, r *http.Request) {
	var req followupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	id := chi.URLParam(r, "id")
	sc, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ans := s.followup.Answer(sc, req.Question)
	writeJSON(w, http.StatusOK, followupResponse{
		SessionID: id,
		Archetype: string(ans.Archetype),
		Answer:    ans.Text,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// searchOutcome pairs a pipeline result with the raw query that produced it.
type searchOutcome struct {
	result   searchuc.Result
	rawQuery string
}

// runSearch decodes, validates, and executes a search request, writing the
// error response itself on failure.
func (s *Server) runSearch(w http.ResponseWriter, r *http.Request) (searchOutcome, bool) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return searchOutcome{}, false
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return searchOutcome{}, false
	}

	qreq, err := query.New(req.Query, req.TopK, s.maxTopK, query.Filters{
		Skills:   req.Filters.Skills,
		MinYears: req.Filters.MinYears,
		Location: req.Filters.Location,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return searchOutcome{}, false
	}

	res, err := s.search.Search(r.Context(), qreq)
	if err != nil {
		s.handleDomainError(w, err)
		return searchOutcome{}, false
	}
	return searchOutcome{result: res, rawQuery: req.Query}, true
}

func searchResultToResponse(o searchOutcome, sessionID string) searchResponse {
	res := o.result
	matches := res.Matches
	if matches == nil {
		matches = []candidate.Match{}
	}
	return searchResponse{
		SessionID: sessionID,
		Results:   matches,
		Total:     len(matches),
		Expanded:  res.Expanded,
		Intent:    res.Intent,
		Variants:  res.Variants,
		Pooled:    res.Pooled,
		Timings: timingsDTO{
			Analyze:  float64(res.Timings.Analyze.Microseconds()) / 1000,
			Retrieve: float64(res.Timings.Retrieve.Microseconds()) / 1000,
			Rerank:   float64(res.Timings.Rerank.Microseconds()) / 1000,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrRateLimited,
		domain.ErrRetrievalUnavailable,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
