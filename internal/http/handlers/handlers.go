package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/gridiron-sim/internal/app/simulations"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/poller"
)

const maxRequestBody = 1 << 16

// GameReader serves stored game snapshots.
type GameReader interface {
	Games() []games.Game
	GameByID(id string) (games.Game, bool)
}

// TeamReader serves the cached roster.
type TeamReader interface {
	Teams() []teams.Team
}

// Simulator starts and stops live games.
type Simulator interface {
	Start(ctx context.Context, req simulations.Request) (games.Game, error)
	Stop(ctx context.Context, id string) (games.Game, error)
}

// Streamer upgrades a request into a snapshot subscription.
type Streamer interface {
	Serve(w nethttp.ResponseWriter, r *nethttp.Request, gameID string) error
}

// TeamsResponse is the body of GET /teams.
type TeamsResponse struct {
	Teams []teams.Team `json:"teams"`
}

// Handler wires HTTP routes to the game and roster services.
type Handler struct {
	games    GameReader
	teams    TeamReader
	sims     Simulator
	stream   Streamer
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. sims and stream may be nil, in which case
// their routes answer 503.
func NewHandler(gameSvc GameReader, teamSvc TeamReader, sims Simulator, stream Streamer, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		games:    gameSvc,
		teams:    teamSvc,
		sims:     sims,
		stream:   stream,
		logger:   logger,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/teams":
		h.Teams(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.Game(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether a roster has been loaded and the poller is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "teams": status.Teams}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Teams returns the cached roster sorted by abbreviation.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	items := h.teams.Teams()
	if items == nil {
		items = []teams.Team{}
	}
	writeJSON(w, nethttp.StatusOK, TeamsResponse{Teams: items}, h.logger)
}

// Games lists game summaries on GET and starts a new game on POST.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet, nethttp.MethodPost) {
		return
	}
	if r.Method == nethttp.MethodPost {
		h.startGame(w, r)
		return
	}
	writeJSON(w, nethttp.StatusOK, games.NewListResponse(h.games.Games()), h.logger)
}

// Game serves /games/{id} and /games/{id}/stream.
func (h *Handler) Game(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/games/")
	idRaw, sub, _ := strings.Cut(rest, "/")
	id, err := url.PathUnescape(idRaw)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	switch sub {
	case "":
		if !requireMethod(w, r, h.logger, nethttp.MethodGet, nethttp.MethodDelete) {
			return
		}
		if r.Method == nethttp.MethodDelete {
			h.stopGame(w, r, id)
			return
		}
		h.gameByID(w, r, id)
	case "stream":
		if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
			return
		}
		h.streamGame(w, r, id)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

func (h *Handler) gameByID(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	game, ok := h.games.GameByID(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

func (h *Handler) startGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.sims == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "simulations disabled", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req simulations.Request
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", logger)
		return
	}

	game, err := h.sims.Start(r.Context(), req)
	if err != nil {
		status := statusForError(err)
		logging.Warn(logger, "start game failed", slog.Any("err", err), slog.Int(logging.FieldStatusCode, status))
		writeError(w, r, status, err.Error(), logger)
		return
	}

	logging.Info(logger, "game created",
		slog.String(logging.FieldGameID, game.ID),
		slog.Uint64(logging.FieldSeed, game.Seed),
		slog.String(logging.FieldMatchup, game.AwayTeam.Abbreviation+"@"+game.HomeTeam.Abbreviation),
	)
	w.Header().Set("Location", "/games/"+url.PathEscape(game.ID))
	writeJSON(w, nethttp.StatusCreated, game, logger)
}

func (h *Handler) stopGame(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	if h.sims == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "simulations disabled", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	game, err := h.sims.Stop(r.Context(), id)
	if errors.Is(err, simulations.ErrGameNotFound) {
		if stored, ok := h.games.GameByID(id); ok {
			msg := "game already finished"
			if stored.Stopped {
				msg = "game already stopped"
			}
			writeError(w, r, nethttp.StatusConflict, msg, logger)
			return
		}
	}
	if err != nil {
		writeError(w, r, statusForError(err), err.Error(), logger)
		return
	}
	logging.Info(logger, "game stopped", slog.String(logging.FieldGameID, id))
	writeJSON(w, nethttp.StatusOK, game, logger)
}

func (h *Handler) streamGame(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	if h.stream == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "streaming disabled", h.logger)
		return
	}
	if _, ok := h.games.GameByID(id); !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	// The upgrader has already answered the client when Serve fails.
	if err := h.stream.Serve(w, r, id); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "stream upgrade failed",
			slog.String(logging.FieldGameID, id), slog.Any("err", err))
	}
}
