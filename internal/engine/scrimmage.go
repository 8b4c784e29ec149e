package engine

import (
	"fmt"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

// PlayKind is the category of the snap a transition resolved.
type PlayKind string

const (
	PlayRun       PlayKind = "run"
	PlayShortPass PlayKind = "shortPass"
	PlayLongPass  PlayKind = "longPass"
	PlaySack      PlayKind = "sack"

	KindKickoff    PlayKind = "kickoff"
	KindExtraPoint PlayKind = "extraPoint"
	KindTwoPoint   PlayKind = "twoPointConversion"
)

type weightedPlay struct {
	kind   PlayKind
	weight float64
}

// Weights sum to 1.
var playWeights = []weightedPlay{
	{PlayRun, 0.40},
	{PlayShortPass, 0.30},
	{PlayLongPass, 0.20},
	{PlaySack, 0.10},
}

var (
	offensivePositions = []string{"QB", "RB", "WR", "TE", "FB"}
	defensivePositions = []string{"LB", "CB", "S", "DE", "DT"}
)

type playResult struct {
	kind     PlayKind
	success  bool
	yards    int
	turnover bool
}

// choosePlay samples a play category by cumulative weight.
func (e *Engine) choosePlay() PlayKind {
	roll := e.dice.r.Float64()
	cumulative := 0.0
	for _, p := range playWeights {
		cumulative += p.weight
		if roll < cumulative {
			return p.kind
		}
	}
	return playWeights[len(playWeights)-1].kind
}

// playSucceeds wins with probability offense/(offense+defense).
func (e *Engine) playSucceeds(offense, defense teams.Team) bool {
	total := offense.OffenseRating + defense.DefenseRating
	if total <= 0 {
		return false
	}
	return e.dice.r.IntN(total) < offense.OffenseRating
}

func (e *Engine) resolvePlay(kind PlayKind, success bool) playResult {
	res := playResult{kind: kind, success: success}
	switch kind {
	case PlayRun:
		if success {
			res.yards = e.dice.inclusive(1, 8)
		} else {
			res.yards = e.dice.inclusive(-2, 0)
		}
	case PlayShortPass:
		if success {
			res.yards = e.dice.inclusive(3, 14)
		} else {
			res.turnover = e.dice.chance(0.10)
		}
	case PlayLongPass:
		if success {
			res.yards = e.dice.inclusive(15, 44)
		} else {
			res.turnover = e.dice.chance(0.15)
		}
	case PlaySack:
		res.yards = -e.dice.inclusive(1, 8)
		res.turnover = e.dice.chance(0.05)
	}
	return res
}

func (e *Engine) playerTag(positions []string) string {
	return fmt.Sprintf("#%d %s", e.dice.inclusive(1, 99), e.dice.pick(positions))
}

// scrimmage resolves one normal play from scrimmage.
func (e *Engine) scrimmage(s GameState) (GameState, []Effect) {
	offense := e.team(s.Possession)
	defense := e.team(s.Possession.Other())

	res := e.resolvePlay(e.choosePlay(), e.playSucceeds(offense, defense))
	ballCarrier := e.playerTag(offensivePositions)
	defender := e.playerTag(defensivePositions)
	line := describePlay(offense, res, ballCarrier, defender)

	var followUps []Effect
	if res.turnover {
		loser := s.Possession
		spot := clamp(s.FieldPosition+res.yards, 0, fieldLength)
		s = s.changePossession()
		s.FieldPosition = fieldLength - spot
		s.Turnovers = s.Turnovers.Add(loser, 1)
		if res.kind == PlaySack {
			line += fmt.Sprintf(" FUMBLE! Recovered by %s for %s.", defender, defense.Name)
		} else {
			line += fmt.Sprintf(" INTERCEPTED by %s of %s!", defender, defense.Name)
		}
	} else {
		s.FieldPosition = clamp(s.FieldPosition+res.yards, 0, fieldLength)
		s.YardsToGo = max(s.YardsToGo-res.yards, 0)
		s.Down = min(s.Down+1, 4)
		switch {
		case s.FieldPosition >= fieldLength:
			// Scoring is checked below.
		case s.YardsToGo == 0:
			s.Down = 1
			s.YardsToGo = firstDownYards
			followUps = append(followUps, commentary(fmt.Sprintf("First down, %s!", offense.Name)))
		case s.Down == 4:
			var decision []Effect
			s, decision = e.fourthDown(s)
			followUps = append(followUps, decision...)
		}
	}

	if s.FieldPosition >= fieldLength {
		var score []Effect
		s, score = e.touchdown(s)
		followUps = append(followUps, score...)
	}

	s.LastPlay = line
	s.LastPlayKind = res.kind
	effects := append([]Effect{commentary(line)}, followUps...)

	var extra []Effect
	s, extra = e.playEvents(s)
	effects = append(effects, extra...)

	s.DriveStatus = e.driveStatus(s)
	return s, effects
}

func describePlay(offense teams.Team, res playResult, ballCarrier, defender string) string {
	switch res.kind {
	case PlayRun:
		if res.yards > 0 {
			return fmt.Sprintf("%s: %s runs for %d yards, brought down by %s.", offense.Abbreviation, ballCarrier, res.yards, defender)
		}
		return fmt.Sprintf("%s: %s is stuffed by %s for %s.", offense.Abbreviation, ballCarrier, defender, yardage(res.yards))
	case PlayShortPass:
		if res.success {
			return fmt.Sprintf("%s: short pass complete to %s for %d yards.", offense.Abbreviation, ballCarrier, res.yards)
		}
		return fmt.Sprintf("%s: short pass intended for %s falls incomplete, broken up by %s.", offense.Abbreviation, ballCarrier, defender)
	case PlayLongPass:
		if res.success {
			return fmt.Sprintf("%s: deep ball hauled in by %s for %d yards!", offense.Abbreviation, ballCarrier, res.yards)
		}
		return fmt.Sprintf("%s: deep pass for %s is off target, %s in coverage.", offense.Abbreviation, ballCarrier, defender)
	default:
		return fmt.Sprintf("%s: %s is sacked by %s for a loss of %d.", offense.Abbreviation, ballCarrier, defender, -res.yards)
	}
}

func yardage(yards int) string {
	switch {
	case yards == 0:
		return "no gain"
	case yards < 0:
		return fmt.Sprintf("a loss of %d", -yards)
	default:
		return fmt.Sprintf("a gain of %d", yards)
	}
}
