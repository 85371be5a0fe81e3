// cmd/server/main.go
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/sozercan/legal-simplify/internal/analyzer"
	"github.com/sozercan/legal-simplify/internal/config"
	"github.com/sozercan/legal-simplify/internal/llm"
	"github.com/sozercan/legal-simplify/internal/normalize"
	"github.com/sozercan/legal-simplify/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	setupLogging(cfg.Log)

	llmProvider, err := llm.New(cfg.LLM)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	analyzer := analyzer.New(llmProvider)

	srv := server.New(*cfg, normalize.New(), analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func setupLogging(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
