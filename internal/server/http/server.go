// Package httpserver provides the HTTP REST API server for the paper catalog service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/scholarstack/paper-catalog-service/internal/browse"
	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/latex"
	"github.com/scholarstack/paper-catalog-service/internal/observability"
)

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	cat        *catalog.Catalog
	sessions   *browse.Store
	renderer   *latex.TextRenderer
	validate   *validator.Validate
	metrics    *observability.Metrics
	logger     zerolog.Logger
	limits     Limits
	ready      atomic.Bool
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Limits bounds client-controlled query parameters.
type Limits struct {
	// DefaultPageSize is used when the client does not specify page_size.
	DefaultPageSize int
	// MaxPageSize caps page_size.
	MaxPageSize int
	// SuggestionLimit caps the suggestion list length.
	SuggestionLimit int
}

// NewServer creates a new HTTP server with all dependencies.
// renderer and metrics may be nil.
func NewServer(
	cfg Config,
	cat *catalog.Catalog,
	sessions *browse.Store,
	renderer *latex.TextRenderer,
	limits Limits,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Server {
	if limits.DefaultPageSize < 1 {
		limits.DefaultPageSize = browse.DefaultPageSize
	}
	if limits.MaxPageSize < limits.DefaultPageSize {
		limits.MaxPageSize = limits.DefaultPageSize
	}
	if limits.SuggestionLimit < 1 {
		limits.SuggestionLimit = browse.DefaultSuggestionLimit
	}

	s := &Server{
		cat:      cat,
		sessions: sessions,
		renderer: renderer,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger.With().Str("component", "http-server").Logger(),
		limits:   limits,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(jsonContentTypeMiddleware)

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/papers", s.listPapers)
		r.Get("/facets", s.getFacets)
		r.Get("/suggest", s.getSuggestions)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.getSessionView)
				r.Delete("/", s.deleteSession)
				r.Patch("/filter", s.patchSessionFilter)
				r.Post("/tags/{tag}/toggle", s.toggleSessionTag)
				r.Post("/page/{op}", s.sessionPageOp)
				r.Post("/selection/{title}", s.toggleSessionSelection)
				r.Delete("/selection", s.clearSessionSelection)
			})
		})
	})

	return r
}

// SetReady marks the dataset load as complete, flipping /readyz to ready.
func (s *Server) SetReady() {
	s.ready.Store(true)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports ready once the dataset load has completed.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"papers": s.cat.Len(),
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort log; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
