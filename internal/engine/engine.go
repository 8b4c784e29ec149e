// Package engine simulates a football game one play at a time.
//
// The engine owns all game state and randomness. Every transition takes the
// previous GameState by value and returns the next one together with the
// side-channel effects (commentary, events, injuries, weather, crowd) it
// produced. Nothing is mutated in place, so callers only need to serialize
// calls for a single game.
package engine

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/timeutil"
)

const (
	fieldLength      = 100
	firstDownYards   = 10
	startingTimeouts = 3
	finalQuarter     = 4

	defaultClockStep     = 15 * time.Second
	defaultQuarterLength = 15 * time.Minute
)

// EventSet toggles the ancillary per-play events.
type EventSet struct {
	Penalties    bool
	Injuries     bool
	Weather      bool
	Crowd        bool
	AutoTimeouts bool
}

// FullEvents enables every ancillary event.
func FullEvents() EventSet {
	return EventSet{Penalties: true, Injuries: true, Weather: true, Crowd: true, AutoTimeouts: true}
}

// BasicEvents disables ancillary events, leaving plays, scoring and the clock.
func BasicEvents() EventSet {
	return EventSet{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvents selects which ancillary events run.
func WithEvents(set EventSet) Option {
	return func(e *Engine) { e.events = set }
}

// WithClockStep sets the simulated time consumed per tick.
func WithClockStep(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.clockStep = d
		}
	}
}

// WithQuarterLength sets the clock each quarter starts with.
func WithQuarterLength(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.quarterLength = d
		}
	}
}

// Engine runs the play-by-play state machine for one matchup.
type Engine struct {
	home          teams.Team
	away          teams.Team
	dice          dice
	events        EventSet
	clockStep     time.Duration
	quarterLength time.Duration
}

// New builds an engine for the matchup. Missing team fields fall back to defaults.
func New(home, away teams.Team, rng Rand, opts ...Option) *Engine {
	e := &Engine{
		home:          home.Normalize("HOME"),
		away:          away.Normalize("AWAY"),
		dice:          dice{r: rng},
		events:        FullEvents(),
		clockStep:     defaultClockStep,
		quarterLength: defaultQuarterLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Home returns the normalized home team.
func (e *Engine) Home() teams.Team { return e.home }

// Away returns the normalized away team.
func (e *Engine) Away() teams.Team { return e.away }

// NewGame returns the opening state, already waiting on the coin toss.
func (e *Engine) NewGame() GameState {
	return GameState{
		Quarter:       1,
		TimeLeft:      timeutil.FormatClock(e.quarterLength),
		Down:          1,
		YardsToGo:     firstDownYards,
		FieldPosition: 35,
		Possession:    SideHome,
		Status:        StatusCoinToss,
		PlayType:      PlayKickoff,
		TimeoutsLeft:  SideCount{Home: startingTimeouts, Away: startingTimeouts},
		Weather:       weatherClear,
		Crowd:         50,
	}
}

// CoinToss decides who receives the opening kickoff and starts the game.
// Only a state waiting on the toss (or not yet started) is changed.
func (e *Engine) CoinToss(s GameState) (GameState, []Effect) {
	if s.Status != StatusCoinToss && s.Status != StatusNotStarted {
		return s, nil
	}
	winner := SideAway
	if e.dice.coin() {
		winner = SideHome
	}
	receive := e.dice.coin()

	choice := "kick"
	receiver := winner.Other()
	if receive {
		choice = "receive"
		receiver = winner
	}

	s.Possession = receiver
	s.PlayType = PlayKickoff
	s.Status = StatusInProgress
	s.LastPlay = fmt.Sprintf("Coin toss won by %s, electing to %s.", e.team(winner).Name, choice)
	return s, []Effect{commentary(s.LastPlay)}
}

// Advance runs the late-game timeout check and then the play selected by PlayType.
// Finished games are returned unchanged.
func (e *Engine) Advance(s GameState) (GameState, []Effect) {
	if s.Status != StatusInProgress {
		return s, nil
	}
	var effects []Effect
	if e.events.AutoTimeouts {
		s, effects = e.urgentTimeout(s)
	}

	var played []Effect
	switch s.PlayType {
	case PlayKickoff:
		s, played = e.kickoff(s)
	case PlayExtraPoint:
		s, played = e.extraPoint(s)
	case PlayTwoPointConversion:
		s, played = e.twoPointConversion(s)
	default:
		s, played = e.scrimmage(s)
	}
	return s, append(effects, played...)
}

// Timeout charges a timeout to side. Sides without timeouts left are ignored.
func (e *Engine) Timeout(s GameState, side Side) (GameState, []Effect) {
	if s.Status != StatusInProgress || s.TimeoutsLeft.Get(side) <= 0 {
		return s, nil
	}
	s.TimeoutsLeft = s.TimeoutsLeft.Add(side, -1)
	line := fmt.Sprintf("Timeout called by %s. %d remaining.", e.team(side).Name, s.TimeoutsLeft.Get(side))
	return s, []Effect{commentary(line)}
}

// Winner returns the home or away abbreviation for the leader, or Tie.
func Winner(s GameState, home, away teams.Team) string {
	switch {
	case s.HomeScore > s.AwayScore:
		return home.Abbreviation
	case s.AwayScore > s.HomeScore:
		return away.Abbreviation
	default:
		return Tie
	}
}

func (e *Engine) team(side Side) teams.Team {
	if side == SideHome {
		return e.home
	}
	return e.away
}

func (e *Engine) driveStatus(s GameState) string {
	side, line := "own", s.FieldPosition
	if s.FieldPosition > 50 {
		side, line = "opponent's", fieldLength-s.FieldPosition
	}
	return fmt.Sprintf("%s %d%s & %d at %s %d",
		e.team(s.Possession).Abbreviation, s.Down, ordinal(s.Down), s.YardsToGo, side, line)
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
