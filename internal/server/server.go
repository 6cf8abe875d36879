// Package server provides the HTTP server and routing for the frontier
// service.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/quantfolio/frontier/internal/config"
	"github.com/quantfolio/frontier/internal/modules/charts"
	"github.com/quantfolio/frontier/internal/modules/optimization"
	optimizationhandlers "github.com/quantfolio/frontier/internal/modules/optimization/handlers"
)

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	Config    *config.Config
	Optimizer *optimization.Service
	Charts    *charts.Service
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	cfg       *config.Config
	optimizer *optimization.Service
	charts    *charts.Service
	templates *template.Template
	system    *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		optimizer: cfg.Optimizer,
		charts:    cfg.Charts,
		templates: tmpl,
		system:    NewSystemHandlers(cfg.Log),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// HTML pages
	s.router.Get("/", s.handleIndex)
	s.router.Post("/", s.handleIndexSubmit)
	s.router.Get("/optimize", s.handleOptimizePage)

	// Liveness + diagnostics
	s.router.Get("/health", s.system.HandleHealth)
	s.router.Route("/api/system", func(r chi.Router) {
		r.Get("/status", s.system.HandleSystemStatus)
	})

	// JSON API
	apiHandler := optimizationhandlers.NewHandler(s.optimizer, optimizationhandlers.Defaults{
		RiskFreeRate: s.cfg.DefaultRiskFree,
		Trials:       s.cfg.DefaultTrials,
		Seed:         s.cfg.DefaultSeed,
	}, s.log)
	apiHandler.RegisterRoutes(s.router)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
