package engine

import (
	"fmt"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/timeutil"
)

// Tick drives the game clock: it ends quarters and the game when the clock has
// expired, and otherwise runs the clock down one step and plays one snap.
func (e *Engine) Tick(s GameState) (GameState, []Effect) {
	if s.Status != StatusInProgress {
		return s, nil
	}
	if timeutil.ParseClock(s.TimeLeft) <= 0 {
		if s.Quarter < finalQuarter {
			return e.endQuarter(s)
		}
		return e.endGame(s)
	}

	// The clock runs before the snap so a late-game timeout can still reset it.
	s.TimeLeft = timeutil.Decrement(s.TimeLeft, e.clockStep)
	return e.Advance(s)
}

func (e *Engine) endQuarter(s GameState) (GameState, []Effect) {
	ended := s.Quarter
	s.LastPlayKind = ""
	s.Quarter = ended + 1
	s.TimeLeft = timeutil.FormatClock(e.quarterLength)
	s.PlayType = PlayKickoff
	s.LastPlay = fmt.Sprintf("End of quarter %d.", ended)

	effects := []Effect{commentary(s.LastPlay)}
	if ended == 2 {
		effects = append(effects, commentary(fmt.Sprintf("Halftime! %s %d, %s %d.",
			e.home.Name, s.HomeScore, e.away.Name, s.AwayScore)))
	}
	if e.events.Weather {
		var weather []Effect
		s, weather = e.weatherChange(s)
		effects = append(effects, weather...)
	}
	return s, effects
}

func (e *Engine) endGame(s GameState) (GameState, []Effect) {
	s.Status = StatusFinished
	s.LastPlayKind = ""
	s.TimeLeft = timeutil.ZeroClock
	s.Winner = Winner(s, e.home, e.away)

	score := fmt.Sprintf("%s %d, %s %d", e.home.Name, s.HomeScore, e.away.Name, s.AwayScore)
	if s.Winner == Tie {
		s.LastPlay = fmt.Sprintf("Final: %s. The game ends in a tie!", score)
	} else {
		s.LastPlay = fmt.Sprintf("Final: %s. Victory for %s!", score, e.winningTeam(s).Name)
	}
	return s, []Effect{commentary(s.LastPlay)}
}

func (e *Engine) winningTeam(s GameState) teams.Team {
	if s.HomeScore > s.AwayScore {
		return e.home
	}
	return e.away
}

// urgentTimeout spends a timeout for the offense in a close game with under two minutes left.
func (e *Engine) urgentTimeout(s GameState) (GameState, []Effect) {
	side := s.Possession
	if s.TimeoutsLeft.Get(side) <= 0 || s.Quarter != finalQuarter {
		return s, nil
	}
	if abs(s.ScoreDiff()) >= 7 || timeutil.Minutes(s.TimeLeft) >= 2 {
		return s, nil
	}
	s, effects := e.Timeout(s, side)
	s.TimeLeft = "02:00"
	return s, effects
}
