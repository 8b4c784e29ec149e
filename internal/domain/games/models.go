package games

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/engine"
)

// Limits bounds the most-recent-first logs kept on a game.
type Limits struct {
	Commentary int
	Events     int
	Injuries   int
}

// DefaultLimits matches what the scoreboard shows.
func DefaultLimits() Limits {
	return Limits{Commentary: 10, Events: 5, Injuries: 5}
}

// Game is the published snapshot of one simulation.
type Game struct {
	ID              string           `json:"id"`
	Seed            uint64           `json:"seed"`
	Profile         string           `json:"profile"`
	HomeTeam        teams.Team       `json:"homeTeam"`
	AwayTeam        teams.Team       `json:"awayTeam"`
	State           engine.GameState `json:"state"`
	Commentary      []string         `json:"commentary"`
	Events          []string         `json:"events"`
	Injuries        []engine.Injury  `json:"injuries"`
	CoinTossVisible bool             `json:"coinTossVisible"`
	Stopped         bool             `json:"stopped"`
	StartedAt       time.Time        `json:"startedAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Finished reports whether no further snapshots will follow, either because
// the clock ran out or because the game was stopped early.
func (g Game) Finished() bool {
	return g.Stopped || g.State.Status == engine.StatusFinished
}

// Stop returns the terminal snapshot of a game halted before the final
// whistle. The scoreboard is left as it stood.
func (g Game) Stop(limits Limits, now time.Time) Game {
	next := g
	next.Stopped = true
	next.CoinTossVisible = false
	next.UpdatedAt = now
	line := fmt.Sprintf("Game stopped in quarter %d with %s left.", g.State.Quarter, g.State.TimeLeft)
	next.Commentary = prepend(g.Commentary, []string{line}, limits.Commentary)
	return next
}

// Apply returns the next snapshot after a transition. Logs are prepended in
// emission order, so the newest entry is always first, then trimmed.
func (g Game) Apply(state engine.GameState, effects []engine.Effect, limits Limits, now time.Time) Game {
	next := g
	next.State = state
	next.UpdatedAt = now

	var events []string
	var injuries []engine.Injury
	for _, e := range effects {
		switch e.Kind {
		case engine.EffectEvent:
			events = append(events, e.Text)
		case engine.EffectInjury:
			if e.Injury != nil {
				injuries = append(injuries, *e.Injury)
			}
		case engine.EffectCoinToss:
			next.CoinTossVisible = e.Show
		}
	}

	next.Commentary = prepend(g.Commentary, engine.Commentary(effects), limits.Commentary)
	next.Events = prepend(g.Events, events, limits.Events)
	next.Injuries = prepend(g.Injuries, injuries, limits.Injuries)
	return next
}

// prepend builds a new slice with fresh entries (newest last in input) placed
// in front of existing ones, capped at limit. It never aliases existing.
func prepend[T any](existing, fresh []T, limit int) []T {
	out := make([]T, 0, min(len(existing)+len(fresh), max(limit, 0)))
	for i := len(fresh) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, fresh[i])
	}
	for _, item := range existing {
		if len(out) >= limit {
			break
		}
		out = append(out, item)
	}
	return out
}

// Summary is the listing projection of a game.
type Summary struct {
	ID        string        `json:"id"`
	Home      string        `json:"home"`
	Away      string        `json:"away"`
	HomeScore int           `json:"homeScore"`
	AwayScore int           `json:"awayScore"`
	Quarter   int           `json:"quarter"`
	TimeLeft  string        `json:"timeLeft"`
	Status    engine.Status `json:"gameStatus"`
	Winner    string        `json:"winner,omitempty"`
	Stopped   bool          `json:"stopped,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Summarize projects g for listings.
func (g Game) Summarize() Summary {
	return Summary{
		ID:        g.ID,
		Home:      g.HomeTeam.Abbreviation,
		Away:      g.AwayTeam.Abbreviation,
		HomeScore: g.State.HomeScore,
		AwayScore: g.State.AwayScore,
		Quarter:   g.State.Quarter,
		TimeLeft:  g.State.TimeLeft,
		Status:    g.State.Status,
		Winner:    g.State.Winner,
		Stopped:   g.Stopped,
		UpdatedAt: g.UpdatedAt,
	}
}

// ListResponse is the payload returned by GET /games.
type ListResponse struct {
	Games []Summary `json:"games"`
}

// NewListResponse builds a ListResponse, never with a nil slice.
func NewListResponse(games []Game) ListResponse {
	out := make([]Summary, 0, len(games))
	for _, g := range games {
		out = append(out, g.Summarize())
	}
	return ListResponse{Games: out}
}
