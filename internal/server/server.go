// Package server exposes the suggestion and sweep engines over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
)

// Server is the PowerBench HTTP server.
type Server struct {
	httpServer *http.Server
	suggester  *suggest.Engine
	sweeper    *sweep.Engine
	logger     *zap.Logger
	mux        *http.ServeMux
}

// New creates a Server wired to the given engines.
func New(addr string, suggester *suggest.Engine, sweeper *sweep.Engine, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second, // Sweeps simulate many combinations per request
			IdleTimeout:  60 * time.Second,
		},
		suggester: suggester,
		sweeper:   sweeper,
		logger:    logger,
		mux:       mux,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/v1/suggest", s.handleSuggest)
	s.mux.HandleFunc("POST /api/v1/sweep", s.handleSweep)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
