// Package server exposes a read-only HTTP surface for monitoring a
// predictor's jobs and endpoint while long-running work is in flight.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/3leaps/nimbusml/internal/config"
	"github.com/3leaps/nimbusml/pkg/predictor"
)

// InfoSource provides read snapshots of predictor state.
type InfoSource interface {
	Info() predictor.Info
}

// Server serves predictor state over HTTP.
type Server struct {
	cfg  config.ServerConfig
	src  InfoSource
	log  *zap.Logger
	http *http.Server
}

// New builds a server around an info source.
func New(cfg config.ServerConfig, src InfoSource, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, src: src, log: log}
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/jobs", s.handleJobs)
		r.Get("/jobs/{name}", s.handleJob)
	})
	return r
}

// Port returns the configured listen port.
func (s *Server) Port() int {
	return s.cfg.Port
}

// Start serves until ctx is cancelled, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("monitoring server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.src.Info())
}

func (s *Server) handleJobs(w http.ResponseWriter, _ *http.Request) {
	info := s.src.Info()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"fit_job":        info.FitJob,
		"transform_jobs": info.TransformJobs,
	})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info := s.src.Info()

	if info.FitJob.Name == name {
		s.writeJSON(w, http.StatusOK, info.FitJob)
		return
	}
	for _, tj := range info.TransformJobs {
		if tj.Name == name {
			s.writeJSON(w, http.StatusOK, tj)
			return
		}
	}

	s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown job " + name})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}
