// Package server exposes bill generation over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/worksbill/billgen-go/pkg/billgen/cache"
	"github.com/worksbill/billgen-go/pkg/billgen/config"
	"github.com/worksbill/billgen-go/pkg/billgen/memwatch"
	"github.com/worksbill/billgen-go/pkg/billgen/registry"
)

// Server serves the upload UI and generation endpoints.
type Server struct {
	cfg      config.Config
	logger   *zap.Logger
	services *registry.Registry
	router   *mux.Router
	http     *http.Server
}

// New wires the service registry and routes.
func New(cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		services: registry.New(),
		router:   mux.NewRouter(),
	}

	s.services.Register("cache", func(r *registry.Registry) (interface{}, error) {
		return cache.New(cache.Options{
			MaxEntries:      cfg.Cache.MaxEntries,
			TTL:             cfg.Cache.TTL.Std(),
			DiskPath:        cfg.Cache.DiskPath,
			JanitorInterval: cfg.Cache.JanitorInterval.Std(),
			Logger:          logger,
		})
	})
	s.services.Register("monitor", func(r *registry.Registry) (interface{}, error) {
		threshold := uint64(cfg.Memory.ThresholdMB) * 1024 * 1024
		mon, err := memwatch.New(threshold, cfg.Memory.SampleInterval.Std(), logger)
		if err != nil {
			return nil, err
		}
		c, err := registry.Get[*cache.Cache](r, "cache")
		if err != nil {
			return nil, err
		}
		mon.OnHighMemory(func(uint64) { c.Shrink() })
		return mon, nil
	})

	s.routes()

	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.withLogging(s.router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/generate", s.handleGenerate).Methods(http.MethodPost)
	s.router.HandleFunc("/api/notesheet", s.handleNoteSheet).Methods(http.MethodPost)
	s.router.HandleFunc("/api/scrutiny", s.handleScrutiny).Methods(http.MethodPost)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.router)
}

// ListenAndServe starts the memory monitor and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mon, err := registry.Get[*memwatch.Monitor](s.services, "monitor")
	if err != nil {
		return err
	}
	mon.Start()
	defer mon.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Server.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return s.closeCache()
	case err := <-errCh:
		if closeErr := s.closeCache(); closeErr != nil && err == nil {
			return closeErr
		}
		return err
	}
}

func (s *Server) closeCache() error {
	c, err := registry.Get[*cache.Cache](s.services, "cache")
	if err != nil {
		return nil
	}
	return c.Close()
}

// withLogging logs every request with its status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
