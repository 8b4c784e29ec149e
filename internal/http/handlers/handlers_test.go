package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/app/simulations"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/engine"
	"github.com/preston-bernstein/gridiron-sim/internal/poller"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
	"github.com/preston-bernstein/gridiron-sim/internal/stream"
	"github.com/preston-bernstein/gridiron-sim/internal/testutil"
)

type stubSims struct {
	game    games.Game
	err     error
	lastReq simulations.Request
	stopped string
}

func (s *stubSims) Start(ctx context.Context, req simulations.Request) (games.Game, error) {
	_ = ctx
	s.lastReq = req
	return s.game, s.err
}

func (s *stubSims) Stop(ctx context.Context, id string) (games.Game, error) {
	_ = ctx
	s.stopped = id
	return s.game, s.err
}

func newTestHandler(g []games.Game, sims Simulator) *Handler {
	gameSvc, teamSvc := testutil.NewServices(g, testutil.SampleTeams())
	logger, _ := testutil.NewBufferLogger()
	return NewHandler(gameSvc, teamSvc, sims, nil, logger, nil)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp errorResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Error != "shutting down" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil, nil)

	rr := testutil.Serve(h, http.MethodPost, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	if got := rr.Header().Get("Allow"); got != http.MethodGet {
		t.Fatalf("expected Allow header GET, got %q", got)
	}

	rr = testutil.Serve(h, http.MethodPut, "/games/abc", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	if got := rr.Header().Get("Allow"); got != "GET, DELETE" {
		t.Fatalf("unexpected Allow header %q", got)
	}
}

func TestReady(t *testing.T) {
	gameSvc, teamSvc := testutil.NewServices(nil, nil)
	status := poller.Status{}
	h := NewHandler(gameSvc, teamSvc, nil, nil, nil, func() poller.Status { return status })

	rr := testutil.Serve(h, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	status = poller.Status{ConsecutiveFailures: 3, LastError: "upstream down", LastSuccess: time.Now()}
	rr = testutil.Serve(h, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var errResp errorResponse
	testutil.DecodeJSON(t, rr, &errResp)
	if errResp.Error != "upstream down" {
		t.Fatalf("expected last error surfaced, got %q", errResp.Error)
	}

	status = poller.Status{LastSuccess: time.Now(), Teams: 32}
	rr = testutil.Serve(h, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyWithoutPoller(t *testing.T) {
	h := newTestHandler(nil, nil)
	rr := testutil.Serve(h, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestTeams(t *testing.T) {
	h := newTestHandler(nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp TeamsResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(resp.Teams))
	}
	if resp.Teams[0].Abbreviation != "BUF" {
		t.Fatalf("expected teams sorted by abbreviation, got %s first", resp.Teams[0].Abbreviation)
	}
}

func TestTeamsEmptyCatalogIsEmptyArray(t *testing.T) {
	gameSvc, teamSvc := testutil.NewServices(nil, nil)
	h := NewHandler(gameSvc, teamSvc, nil, nil, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"teams":[]`) {
		t.Fatalf("expected empty array, got %s", rr.Body.String())
	}
}

func TestListGames(t *testing.T) {
	h := newTestHandler([]games.Game{testutil.SampleGame("g1"), testutil.SampleGame("g2")}, nil)

	rr := testutil.Serve(h, http.MethodGet, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp games.ListResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(resp.Games))
	}
	if resp.Games[0].ID != "g2" {
		t.Fatalf("expected newest first, got %s", resp.Games[0].ID)
	}
}

func TestGameByID(t *testing.T) {
	h := newTestHandler([]games.Game{testutil.SampleGame("g1")}, nil)

	rr := testutil.Serve(h, http.MethodGet, "/games/g1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var game games.Game
	testutil.DecodeJSON(t, rr, &game)
	if game.ID != "g1" || game.State.HomeScore != 7 {
		t.Fatalf("unexpected game %+v", game)
	}

	rr = testutil.Serve(h, http.MethodGet, "/games/missing", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestGameByIDRejectsInvalidIDs(t *testing.T) {
	h := newTestHandler(nil, nil)
	for _, path := range []string{"/games/", "/games/a%20b"} {
		rr := testutil.Serve(h, http.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
	rr := testutil.Serve(h, http.MethodGet, "/games/g1/extra", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(nil, nil)
	rr := testutil.Serve(h, http.MethodGet, "/nope", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestCreateGame(t *testing.T) {
	sims := &stubSims{game: testutil.SampleGame("new-game")}
	h := newTestHandler(nil, sims)

	rr := testutil.PostJSON(h, "/games", `{"home":"KC","away":"BUF","seed":42,"profile":"basic"}`)
	testutil.AssertStatus(t, rr, http.StatusCreated)

	if got := rr.Header().Get("Location"); got != "/games/new-game" {
		t.Fatalf("unexpected location %q", got)
	}
	want := simulations.Request{Home: "KC", Away: "BUF", Seed: 42, Profile: "basic"}
	if sims.lastReq != want {
		t.Fatalf("expected request %+v, got %+v", want, sims.lastReq)
	}
}

func TestCreateGameEmptyBody(t *testing.T) {
	sims := &stubSims{game: testutil.SampleGame("new-game")}
	h := newTestHandler(nil, sims)

	rr := testutil.Serve(h, http.MethodPost, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	if sims.lastReq != (simulations.Request{}) {
		t.Fatalf("expected zero request, got %+v", sims.lastReq)
	}
}

func TestCreateGameRejectsBadBody(t *testing.T) {
	sims := &stubSims{}
	h := newTestHandler(nil, sims)

	for _, body := range []string{`{"home":`, `{"unknown":true}`} {
		rr := testutil.PostJSON(h, "/games", body)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestCreateGameMapsErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{simulations.ErrTooManyGames, http.StatusTooManyRequests},
		{simulations.ErrUnknownProfile, http.StatusBadRequest},
		{providers.ErrUnknownTeam, http.StatusBadRequest},
		{providers.ErrNotEnoughTeams, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		h := newTestHandler(nil, &stubSims{err: tc.err})
		rr := testutil.Serve(h, http.MethodPost, "/games", nil)
		testutil.AssertStatus(t, rr, tc.want)
	}
}

func TestCreateGameWithoutSimulator(t *testing.T) {
	h := newTestHandler(nil, nil)
	rr := testutil.Serve(h, http.MethodPost, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestStopGame(t *testing.T) {
	stopped := testutil.SampleGame("g1")
	sims := &stubSims{game: stopped}
	h := newTestHandler([]games.Game{stopped}, sims)

	rr := testutil.Serve(h, http.MethodDelete, "/games/g1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if sims.stopped != "g1" {
		t.Fatalf("expected g1 stopped, got %q", sims.stopped)
	}
}

func TestStopGameNotRunning(t *testing.T) {
	finished := testutil.SampleGame("done")
	finished.State.Status = engine.StatusFinished
	halted := testutil.SampleGame("halted").Stop(games.DefaultLimits(), time.Now())
	sims := &stubSims{err: simulations.ErrGameNotFound}
	h := newTestHandler([]games.Game{finished, halted}, sims)

	cases := map[string]string{"done": "game already finished", "halted": "game already stopped"}
	for id, want := range cases {
		rr := testutil.Serve(h, http.MethodDelete, "/games/"+id, nil)
		testutil.AssertStatus(t, rr, http.StatusConflict)
		var resp errorResponse
		testutil.DecodeJSON(t, rr, &resp)
		if resp.Error != want {
			t.Fatalf("%s: expected %q, got %q", id, want, resp.Error)
		}
	}

	rr := testutil.Serve(h, http.MethodDelete, "/games/unknown", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestStreamWithoutHub(t *testing.T) {
	h := newTestHandler([]games.Game{testutil.SampleGame("g1")}, nil)
	rr := testutil.Serve(h, http.MethodGet, "/games/g1/stream", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestStreamUnknownGame(t *testing.T) {
	gameSvc, teamSvc := testutil.NewServices(nil, nil)
	hub := stream.NewHub(gameSvc, nil)
	h := NewHandler(gameSvc, teamSvc, nil, hub, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/games/missing/stream", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestStreamDeliversSnapshot(t *testing.T) {
	gameSvc, teamSvc := testutil.NewServices([]games.Game{testutil.SampleGame("g1")}, []teams.Team{})
	hub := stream.NewHub(gameSvc, nil)
	srv := httptest.NewServer(NewHandler(gameSvc, teamSvc, nil, hub, nil, nil))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	conn := testutil.DialStream(t, srv.URL, "/games/g1/stream")
	var msg stream.Message
	testutil.ReadStreamJSON(t, conn, &msg)
	if msg.Type != stream.MsgSnapshot || msg.Game.ID != "g1" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestStatusForErrorRateLimit(t *testing.T) {
	err := &providers.RateLimitError{Provider: "balldontlie", StatusCode: http.StatusTooManyRequests}
	if got := statusForError(err); got != http.StatusBadGateway {
		t.Fatalf("expected 502 for upstream rate limit, got %d", got)
	}
	if got := statusForError(providers.ErrProviderUnavailable); got != http.StatusBadGateway {
		t.Fatalf("expected 502 for unavailable provider, got %d", got)
	}
	if got := statusForError(simulations.ErrGameNotFound); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
}
