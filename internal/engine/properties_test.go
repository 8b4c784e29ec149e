package engine

import (
	"testing"

	"github.com/preston-bernstein/gridiron-sim/internal/timeutil"
)

const maxTicks = 2000

func playGame(t *testing.T, seed uint64, events EventSet, check func(prev, next GameState, effects []Effect)) GameState {
	t.Helper()
	e := New(homeTeam(), awayTeam(), NewRand(seed), WithEvents(events))
	s, _ := e.CoinToss(e.NewGame())
	for i := 0; i < maxTicks; i++ {
		next, effects := e.Tick(s)
		check(s, next, effects)
		if next.Status == StatusFinished {
			return next
		}
		s = next
	}
	t.Fatalf("seed %d: game did not finish within %d ticks", seed, maxTicks)
	return s
}

func TestInvariantsHoldAcrossSeededGames(t *testing.T) {
	for seed := uint64(1); seed <= 60; seed++ {
		events := FullEvents()
		if seed%3 == 0 {
			events = BasicEvents()
		}
		playGame(t, seed, events, func(prev, next GameState, effects []Effect) {
			assertRanges(t, seed, next)
			assertScoring(t, seed, prev, next)
			assertPossession(t, seed, prev, next)
			assertLifecycle(t, seed, prev, next)
		})
	}
}

func assertRanges(t *testing.T, seed uint64, s GameState) {
	t.Helper()
	if s.FieldPosition < 0 || s.FieldPosition > 100 {
		t.Fatalf("seed %d: field position %d out of range", seed, s.FieldPosition)
	}
	if s.Down < 1 || s.Down > 4 {
		t.Fatalf("seed %d: down %d out of range", seed, s.Down)
	}
	if s.Quarter < 1 || s.Quarter > 4 {
		t.Fatalf("seed %d: quarter %d out of range", seed, s.Quarter)
	}
	if s.YardsToGo < 0 {
		t.Fatalf("seed %d: negative yards to go", seed)
	}
	for _, c := range []SideCount{s.TimeoutsLeft, s.Penalties, s.Turnovers} {
		if c.Home < 0 || c.Away < 0 {
			t.Fatalf("seed %d: negative counter %+v", seed, c)
		}
	}
	if s.Crowd < 0 || s.Crowd > 100 {
		t.Fatalf("seed %d: crowd %d out of range", seed, s.Crowd)
	}
}

func assertScoring(t *testing.T, seed uint64, prev, next GameState) {
	t.Helper()
	home := next.HomeScore - prev.HomeScore
	away := next.AwayScore - prev.AwayScore
	if home != 0 && away != 0 {
		t.Fatalf("seed %d: both sides scored on one tick", seed)
	}
	for _, delta := range []int{home, away} {
		switch delta {
		case 0, 1, 2, 3, 6:
		default:
			t.Fatalf("seed %d: invalid score delta %d", seed, delta)
		}
	}
	if delta := home + away; delta == 6 {
		if next.PlayType != PlayExtraPoint && next.PlayType != PlayTwoPointConversion {
			t.Fatalf("seed %d: touchdown without conversion attempt, got %s", seed, next.PlayType)
		}
		scorer := SideHome
		if away == 6 {
			scorer = SideAway
		}
		if next.Possession != scorer {
			t.Fatalf("seed %d: touchdown credited to side without the ball", seed)
		}
	}
	if next.Turnovers.Home < prev.Turnovers.Home || next.Turnovers.Away < prev.Turnovers.Away {
		t.Fatalf("seed %d: turnovers decreased", seed)
	}
	if next.Penalties.Home < prev.Penalties.Home || next.Penalties.Away < prev.Penalties.Away {
		t.Fatalf("seed %d: penalties decreased", seed)
	}
}

func assertPossession(t *testing.T, seed uint64, prev, next GameState) {
	t.Helper()
	if prev.Status != StatusInProgress || next.Quarter != prev.Quarter || timeutil.ParseClock(prev.TimeLeft) == 0 {
		return
	}
	flipped := next.Possession != prev.Possession
	switch prev.PlayType {
	case PlayExtraPoint, PlayTwoPointConversion:
		if !flipped || next.PlayType != PlayKickoff {
			t.Fatalf("seed %d: conversion must hand the ball over for a kickoff", seed)
		}
	case PlayKickoff:
		if flipped || next.PlayType != PlayNormal {
			t.Fatalf("seed %d: kickoff must leave the ball with the receiving side", seed)
		}
	case PlayNormal:
		if !flipped {
			return
		}
		turnover := next.Turnovers != prev.Turnovers
		fourthDown := prev.Down == 3
		if !turnover && !fourthDown {
			t.Fatalf("seed %d: possession changed mid-drive from %d down without a turnover", seed, prev.Down)
		}
	}
}

func assertLifecycle(t *testing.T, seed uint64, prev, next GameState) {
	t.Helper()
	if next.Status != StatusFinished {
		return
	}
	if prev.Quarter != 4 || timeutil.ParseClock(prev.TimeLeft) != 0 {
		t.Fatalf("seed %d: finished early in quarter %d at %s", seed, prev.Quarter, prev.TimeLeft)
	}
	if want := Winner(next, homeTeam(), awayTeam()); next.Winner != want {
		t.Fatalf("seed %d: expected winner %s, got %s", seed, want, next.Winner)
	}
}

func TestSameSeedReplaysSameGame(t *testing.T) {
	noop := func(prev, next GameState, effects []Effect) {}
	first := playGame(t, 42, FullEvents(), noop)
	second := playGame(t, 42, FullEvents(), noop)
	if first != second {
		t.Fatalf("expected identical final states, got %+v vs %+v", first, second)
	}
}
