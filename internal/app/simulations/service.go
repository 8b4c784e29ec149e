package simulations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/driver"
	"github.com/preston-bernstein/gridiron-sim/internal/engine"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/metrics"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

// Event profiles accepted by Start.
const (
	ProfileFull  = "full"
	ProfileBasic = "basic"
)

var (
	// ErrTooManyGames is returned when MaxActiveGames simulations are already running.
	ErrTooManyGames = errors.New("too many active games")
	// ErrGameNotFound is returned when no active game has the id.
	ErrGameNotFound = errors.New("game not found")
	// ErrUnknownProfile is returned for an event profile other than full or basic.
	ErrUnknownProfile = errors.New("unknown event profile")
)

// Catalog is the team source games are drawn from.
type Catalog interface {
	Teams() []teams.Team
}

// Request describes a game to start. Empty fields are chosen for the caller.
type Request struct {
	Home    string `json:"home"`
	Away    string `json:"away"`
	Seed    uint64 `json:"seed"`
	Profile string `json:"profile"`
}

// Config controls simulation pacing and capacity.
type Config struct {
	TickInterval   time.Duration
	ClockStep      time.Duration
	CoinTossDelay  time.Duration
	DefaultProfile string
	MaxActiveGames int
	Limits         games.Limits
}

// Service starts, tracks and stops simulated games.
type Service struct {
	catalog   Catalog
	provider  providers.TeamProvider
	publisher driver.Publisher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	cfg       Config
	now       func() time.Time
	newID     func() string
	newSeed   func() uint64

	// base parents every driver; StopAll cancels it.
	base   context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	drivers map[string]*driver.Driver
}

// NewService wires a simulations service. provider is consulted when the catalog is empty.
func NewService(catalog Catalog, provider providers.TeamProvider, publisher driver.Publisher, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Service {
	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = ProfileFull
	}
	if cfg.Limits == (games.Limits{}) {
		cfg.Limits = games.DefaultLimits()
	}
	base, cancel := context.WithCancel(context.Background())
	seeds := engine.NewRand(uint64(time.Now().UnixNano()))
	var seedMu sync.Mutex
	return &Service{
		catalog:   catalog,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
		metrics:   recorder,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
		newSeed: func() uint64 {
			seedMu.Lock()
			defer seedMu.Unlock()
			return seeds.Uint64()
		},
		base:    base,
		cancel:  cancel,
		drivers: make(map[string]*driver.Driver),
	}
}

// Start creates a game from req, publishes its initial snapshot and launches its driver.
func (s *Service) Start(ctx context.Context, req Request) (games.Game, error) {
	profile, events, err := s.resolveProfile(req.Profile)
	if err != nil {
		return games.Game{}, err
	}

	catalog, err := s.teams(ctx)
	if err != nil {
		return games.Game{}, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.newSeed()
	}
	rng := engine.NewRand(seed)

	home, away, err := providers.PickMatchup(catalog, rng, req.Home, req.Away)
	if err != nil {
		return games.Game{}, err
	}

	opts := []engine.Option{engine.WithEvents(events)}
	if s.cfg.ClockStep > 0 {
		opts = append(opts, engine.WithClockStep(s.cfg.ClockStep))
	}
	eng := engine.New(home, away, rng, opts...)

	now := s.now()
	game := games.Game{
		ID:         s.newID(),
		Seed:       seed,
		Profile:    profile,
		HomeTeam:   eng.Home(),
		AwayTeam:   eng.Away(),
		State:      eng.NewGame(),
		Commentary: []string{},
		Events:     []string{},
		Injuries:   []engine.Injury{},
		StartedAt:  now,
		UpdatedAt:  now,
	}

	d := driver.New(eng, game, s.publisher, s.logger, s.metrics, driver.Config{
		TickInterval:  s.cfg.TickInterval,
		CoinTossDelay: s.cfg.CoinTossDelay,
		Limits:        s.cfg.Limits,
	})

	s.mu.Lock()
	if s.cfg.MaxActiveGames > 0 && len(s.drivers) >= s.cfg.MaxActiveGames {
		s.mu.Unlock()
		return games.Game{}, ErrTooManyGames
	}
	s.drivers[game.ID] = d
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.Publish(game)
	}
	d.Start(s.base)
	go s.reap(game.ID, d)

	return game, nil
}

// Stop cancels an active game and returns its last snapshot.
func (s *Service) Stop(ctx context.Context, id string) (games.Game, error) {
	s.mu.Lock()
	d, ok := s.drivers[id]
	s.mu.Unlock()
	if !ok {
		return games.Game{}, ErrGameNotFound
	}
	if err := d.Stop(ctx); err != nil {
		return games.Game{}, err
	}
	s.forget(id, d)
	return d.Snapshot(), nil
}

// StopAll cancels every active game, waiting until ctx expires.
func (s *Service) StopAll(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	active := make(map[string]*driver.Driver, len(s.drivers))
	for id, d := range s.drivers {
		active[id] = d
	}
	s.mu.Unlock()

	var errs []error
	for id, d := range active {
		if err := d.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop game %s: %w", id, err))
			continue
		}
		s.forget(id, d)
	}
	logging.Info(s.logger, "simulations stopped", slog.Int(logging.FieldCount, len(active)))
	return errors.Join(errs...)
}

// Active returns the number of running games.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drivers)
}

// IsActive reports whether id is still running.
func (s *Service) IsActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drivers[id]
	return ok
}

func (s *Service) resolveProfile(raw string) (string, engine.EventSet, error) {
	if raw == "" {
		raw = s.cfg.DefaultProfile
	}
	switch raw {
	case ProfileFull:
		return ProfileFull, engine.FullEvents(), nil
	case ProfileBasic:
		return ProfileBasic, engine.BasicEvents(), nil
	default:
		return "", engine.EventSet{}, fmt.Errorf("%w: %q", ErrUnknownProfile, raw)
	}
}

// teams returns the cached catalog, falling back to a direct provider fetch.
func (s *Service) teams(ctx context.Context) ([]teams.Team, error) {
	if s.catalog != nil {
		if items := s.catalog.Teams(); len(items) >= 2 {
			return items, nil
		}
	}
	if s.provider == nil {
		return nil, providers.ErrNotEnoughTeams
	}
	items, err := s.provider.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return items, nil
}

// reap drops a driver from the active set once its game finishes on its own.
func (s *Service) reap(id string, d *driver.Driver) {
	<-d.Done()
	s.forget(id, d)
}

func (s *Service) forget(id string, d *driver.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drivers[id] == d {
		delete(s.drivers, id)
	}
}
