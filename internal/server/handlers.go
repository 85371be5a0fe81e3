package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sozercan/legal-simplify/apimodels"
	"github.com/sozercan/legal-simplify/internal/metrics"
	"github.com/sozercan/legal-simplify/internal/normalize"
)

// Client-facing error messages.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgNoText           = "No legal text provided"
	msgUnsupportedFile  = "Unsupported file type"
	msgServiceFailed    = "AI service failed."
)

func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	// Only allow POST method
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	defer r.Body.Close()

	text, err := s.normalizer.Normalize(ctx, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.InputChars.Observe(float64(len(text)))

	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.metrics.Analyses.WithLabelValues(metrics.OutcomeSuccess).Inc()
	writeJSON(w, http.StatusOK, result)
}

// fail maps a pipeline error onto the client response. Only invalid input
// is reported as such; every other failure gets the same generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, normalize.ErrEmptyInput):
		s.metrics.Analyses.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		writeError(w, http.StatusBadRequest, msgNoText)
	case errors.Is(err, normalize.ErrUnsupportedFileType):
		s.metrics.Analyses.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		writeError(w, http.StatusBadRequest, msgUnsupportedFile)
	default:
		s.metrics.Analyses.WithLabelValues(metrics.OutcomeFailure).Inc()
		slog.ErrorContext(r.Context(), "Analysis request failed",
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, msgServiceFailed)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apimodels.ErrorResponse{Error: msg})
}
