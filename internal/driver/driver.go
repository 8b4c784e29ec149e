// Package driver runs one simulated game in real time. A Driver owns the only
// goroutine that mutates its game and publishes a snapshot after every step.
package driver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/engine"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/metrics"
)

const (
	defaultTickInterval  = 3 * time.Second
	defaultCoinTossDelay = 3 * time.Second
)

// Publisher receives every snapshot the driver produces.
type Publisher interface {
	Publish(g games.Game)
}

// Config controls pacing and log retention.
type Config struct {
	TickInterval  time.Duration
	CoinTossDelay time.Duration
	Limits        games.Limits
}

// Driver advances a single game on a timer.
type Driver struct {
	engine    *engine.Engine
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	cfg       Config
	now       func() time.Time

	mu   sync.RWMutex
	game games.Game

	done      chan struct{}
	exited    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	startMu   sync.Mutex
	started   bool
}

// New builds a driver for game using eng. The game's State should come from eng.NewGame.
func New(eng *engine.Engine, game games.Game, publisher Publisher, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Driver {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if cfg.CoinTossDelay < 0 {
		cfg.CoinTossDelay = defaultCoinTossDelay
	}
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldGameID, game.ID))
	}
	return &Driver{
		engine:    eng,
		publisher: publisher,
		logger:    logger,
		metrics:   recorder,
		cfg:       cfg,
		now:       time.Now,
		game:      game,
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
}

// Start launches the game loop. Calling Start more than once has no effect.
func (d *Driver) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.startMu.Lock()
		d.started = true
		d.startMu.Unlock()

		d.metrics.RecordGameStarted(d.game.Profile)
		logging.Info(d.logger, "game started",
			slog.String(logging.FieldMatchup, d.game.AwayTeam.Abbreviation+" @ "+d.game.HomeTeam.Abbreviation),
			slog.Uint64(logging.FieldSeed, d.game.Seed),
		)
		go d.run(ctx)
	})
}

// Stop cancels the game loop and waits for it to exit or for ctx to expire.
// Stopping a finished or never-started driver returns immediately.
func (d *Driver) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() { close(d.done) })

	d.startMu.Lock()
	started := d.started
	d.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-d.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the loop has exited, either finished or stopped.
func (d *Driver) Done() <-chan struct{} {
	return d.exited
}

// Snapshot returns the latest published game.
func (d *Driver) Snapshot() games.Game {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.game
}

func (d *Driver) run(ctx context.Context) {
	defer close(d.exited)

	// Coin toss: show the animation, pause, toss, hide.
	d.apply(d.game.State, []engine.Effect{engine.CoinTossAnimation(true)})
	if !d.wait(ctx, d.cfg.CoinTossDelay) {
		d.stopped()
		return
	}
	state, effects := d.engine.CoinToss(d.game.State)
	d.apply(state, append(effects, engine.CoinTossAnimation(false)))

	ticker := time.NewTicker(d.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.stopped()
			return
		case <-d.done:
			d.stopped()
			return
		case <-ticker.C:
			if d.tick() {
				return
			}
		}
	}
}

// tick advances the clock once and reports whether the game is over.
func (d *Driver) tick() bool {
	start := time.Now()
	prev := d.game.State
	next, effects := d.engine.Tick(prev)
	d.apply(next, effects)
	d.metrics.RecordTick(time.Since(start))

	if next.LastPlayKind != "" {
		d.metrics.RecordPlay(string(next.LastPlayKind))
	}
	d.metrics.RecordScore(next.HomeScore + next.AwayScore - prev.HomeScore - prev.AwayScore)
	for _, line := range engine.Commentary(effects) {
		logging.Debug(d.logger, "play",
			slog.Int(logging.FieldQuarter, next.Quarter),
			slog.String("time_left", next.TimeLeft),
			slog.String("commentary", line),
		)
	}

	if next.Quarter != prev.Quarter {
		logging.Info(d.logger, "quarter ended",
			slog.Int(logging.FieldQuarter, prev.Quarter),
			slog.Int("home_score", next.HomeScore),
			slog.Int("away_score", next.AwayScore),
		)
	}

	if next.Status != engine.StatusFinished {
		return false
	}
	outcome := metrics.OutcomeDecided
	if next.Winner == engine.Tie {
		outcome = metrics.OutcomeTie
	}
	d.metrics.RecordGameFinished(outcome)
	logging.Info(d.logger, "game finished",
		slog.String(logging.FieldWinner, next.Winner),
		slog.Int("home_score", next.HomeScore),
		slog.Int("away_score", next.AwayScore),
	)
	return true
}

// stopped publishes the halted snapshot so stores and streams see a terminal game.
func (d *Driver) stopped() {
	d.publish(d.game.Stop(d.cfg.Limits, d.now()))
	d.metrics.RecordGameFinished(metrics.OutcomeStopped)
	logging.Info(d.logger, "game stopped", slog.Int(logging.FieldQuarter, d.game.State.Quarter))
}

func (d *Driver) apply(state engine.GameState, effects []engine.Effect) {
	d.publish(d.game.Apply(state, effects, d.cfg.Limits, d.now()))
}

func (d *Driver) publish(next games.Game) {
	d.mu.Lock()
	d.game = next
	d.mu.Unlock()

	if d.publisher != nil {
		d.publisher.Publish(next)
	}
}

// wait sleeps for delay unless the driver is stopped first.
func (d *Driver) wait(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		select {
		case <-ctx.Done():
			return false
		case <-d.done:
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-d.done:
		return false
	case <-timer.C:
		return true
	}
}
