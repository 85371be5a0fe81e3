package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sozercan/legal-simplify/apimodels"
	"github.com/sozercan/legal-simplify/internal/config"
	"github.com/sozercan/legal-simplify/internal/metrics"
	"github.com/sozercan/legal-simplify/internal/normalize"
)

// Analyzer produces the structured breakdown of a legal text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*apimodels.AnalysisResult, error)
}

type Server struct {
	cfg        config.ServerConfig
	server     *http.Server
	normalizer *normalize.Normalizer
	analyzer   Analyzer
	metrics    *metrics.Metrics
}

func New(cfg config.Config, normalizer *normalize.Normalizer, analyzer Analyzer) *Server {
	s := &Server{
		cfg:        cfg.Server,
		normalizer: normalizer,
		analyzer:   analyzer,
		metrics:    metrics.New(),
	}

	// Create server
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Run() error {
	// Create a channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	// Start the server
	go func() {
		slog.Info("Starting server", "address", s.server.Addr)
		serverErrors <- s.server.ListenAndServe()
	}()

	// Create channel for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Wait for interrupt or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("Starting shutdown", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		// Trigger graceful shutdown
		err := s.server.Shutdown(ctx)
		if err != nil {
			// Error from closing listeners
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}
