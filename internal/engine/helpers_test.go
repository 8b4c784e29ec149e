package engine

import (
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

// scriptedRand replays queued draws. An empty float queue yields 0.99 so no
// probabilistic event fires; an empty int queue yields 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func homeTeam() teams.Team {
	return teams.Team{Name: "Chiefs", Abbreviation: "KC", OffenseRating: 80, DefenseRating: 80, SpecialTeamsRating: 80}
}

func awayTeam() teams.Team {
	return teams.Team{Name: "Bills", Abbreviation: "BUF", OffenseRating: 80, DefenseRating: 80, SpecialTeamsRating: 80}
}

func newScripted(rng *scriptedRand, opts ...Option) *Engine {
	return New(homeTeam(), awayTeam(), rng, opts...)
}

// liveState returns an in-progress first-and-ten state for the home offense.
func liveState(e *Engine) GameState {
	s := e.NewGame()
	s.Status = StatusInProgress
	s.PlayType = PlayNormal
	s.FieldPosition = 25
	return s
}

func hasText(effects []Effect, kind EffectKind) bool {
	for _, e := range effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
