// Package api exposes the calculator and contact form over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vrtu/musharaka/internal/cache"
	"github.com/vrtu/musharaka/internal/config"
	"github.com/vrtu/musharaka/internal/leads"
)

const maxBodyBytes = 1 << 20

// Options carries the dependencies of a Server. Cache may be nil.
type Options struct {
	Config  *config.Config
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Cache   cache.Cache
	Leads   leads.Repository
	Version string
}

// Server is the HTTP API server
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	tracer  trace.Tracer
	cache   cache.Cache
	leads   leads.Repository
	version string
	router  chi.Router
}

// NewServer creates a server with all routes and middleware
func NewServer(opts Options) *Server {
	s := &Server{
		cfg:     opts.Config,
		logger:  opts.Logger,
		tracer:  opts.Tracer,
		cache:   opts.Cache,
		leads:   opts.Leads,
		version: opts.Version,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.version == "" {
		s.version = "dev"
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/contact", s.handleContact)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
