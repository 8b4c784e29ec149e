package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/gridiron-sim/internal/app/simulations"
	"github.com/preston-bernstein/gridiron-sim/internal/http/middleware"
	"github.com/preston-bernstein/gridiron-sim/internal/http/requestutil"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorResponse{Error: message, RequestID: reqID}, logger)
}

// requireMethod writes 405 and reports false unless r uses one of allowed.
func requireMethod(w http.ResponseWriter, r *http.Request, logger *slog.Logger, allowed ...string) bool {
	for _, m := range allowed {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

// statusForError maps service errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, simulations.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, simulations.ErrTooManyGames):
		return http.StatusTooManyRequests
	case errors.Is(err, simulations.ErrUnknownProfile), errors.Is(err, providers.ErrUnknownTeam):
		return http.StatusBadRequest
	case errors.Is(err, providers.ErrNotEnoughTeams):
		return http.StatusServiceUnavailable
	case errors.Is(err, providers.ErrProviderUnavailable):
		return http.StatusBadGateway
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
