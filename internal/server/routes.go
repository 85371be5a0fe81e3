package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	r.Use(s.instrument)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// all methods, so the handler answers non-POST itself
		r.HandleFunc("/simplify", s.handleSimplify)
		r.Get("/health", s.handleHealth)
	})
	r.Get("/metrics", s.metrics.Handler().ServeHTTP)

	// Static files
	if s.cfg.StaticDir != "" {
		if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
			r.Get("/*", http.FileServer(http.Dir(s.cfg.StaticDir)).ServeHTTP)
		} else {
			slog.Warn("static directory not found, UI disabled", "dir", s.cfg.StaticDir)
		}
	}

	return r
}
