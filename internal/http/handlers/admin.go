package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/gridiron-sim/internal/http/requestutil"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/poller"
)

// RosterRefresher reloads the team catalog on demand.
type RosterRefresher interface {
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher RosterRefresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(refresher RosterRefresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshRoster forces a roster fetch outside the poll interval.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodPost) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "roster poller not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin roster refresh failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "failed to refresh roster", logger)
		return
	}

	status := h.refresher.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"teams":  status.Teams,
	}, logger)
	logging.Info(logger, "admin roster refreshed", slog.Int(logging.FieldCount, status.Teams))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
