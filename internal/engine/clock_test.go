package engine

import (
	"strings"
	"testing"
	"time"
)

func TestTickRunsClockAndPlays(t *testing.T) {
	e := newScripted(&scriptedRand{}, WithEvents(BasicEvents()))
	s := liveState(e)

	got, effects := e.Tick(s)
	if got.TimeLeft != "14:45" {
		t.Fatalf("expected 14:45, got %s", got.TimeLeft)
	}
	if len(effects) == 0 || got.LastPlay == "" {
		t.Fatalf("expected a play to run")
	}
}

func TestTickEndsQuarter(t *testing.T) {
	e := newScripted(&scriptedRand{ints: []int{2}})
	s := liveState(e)
	s.Quarter, s.TimeLeft = 1, "00:00"

	got, effects := e.Tick(s)
	if got.Quarter != 2 || got.TimeLeft != "15:00" || got.PlayType != PlayKickoff {
		t.Fatalf("unexpected quarter transition %+v", got)
	}
	if effects[0].Text != "End of quarter 1." {
		t.Fatalf("unexpected commentary %q", effects[0].Text)
	}
	if got.Weather != "Rainy" || !hasText(effects, EffectWeather) {
		t.Fatalf("expected weather refresh, got %s", got.Weather)
	}
}

func TestTickHalftime(t *testing.T) {
	e := newScripted(&scriptedRand{})
	s := liveState(e)
	s.Quarter, s.TimeLeft = 2, "00:00"
	s.HomeScore, s.AwayScore = 14, 10

	got, effects := e.Tick(s)
	if got.Quarter != 3 {
		t.Fatalf("expected third quarter, got %d", got.Quarter)
	}
	if len(effects) < 2 || effects[1].Text != "Halftime! Chiefs 14, Bills 10." {
		t.Fatalf("expected halftime line, got %+v", effects)
	}
}

func TestTickFinishesGame(t *testing.T) {
	cases := []struct {
		name       string
		home, away int
		winner     string
		phrase     string
	}{
		{"home win", 24, 17, "KC", "Victory for Chiefs!"},
		{"away win", 3, 10, "BUF", "Victory for Bills!"},
		{"tie", 20, 20, Tie, "ends in a tie"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newScripted(&scriptedRand{})
			s := liveState(e)
			s.Quarter, s.TimeLeft = 4, "00:00"
			s.HomeScore, s.AwayScore = tc.home, tc.away

			got, effects := e.Tick(s)
			if got.Status != StatusFinished || got.Winner != tc.winner {
				t.Fatalf("expected finished with %s, got %s/%s", tc.winner, got.Status, got.Winner)
			}
			if !strings.Contains(effects[0].Text, tc.phrase) {
				t.Fatalf("expected %q in %q", tc.phrase, effects[0].Text)
			}

			again, more := e.Tick(got)
			if again != got || more != nil {
				t.Fatalf("expected finished game to be terminal")
			}
		})
	}
}

func TestTickIgnoresGameBeforeCoinToss(t *testing.T) {
	e := newScripted(&scriptedRand{})
	s := e.NewGame()
	got, effects := e.Tick(s)
	if got != s || effects != nil {
		t.Fatalf("expected no change before coin toss")
	}
}

func TestUrgentTimeoutResetsClock(t *testing.T) {
	e := newScripted(&scriptedRand{})
	s := liveState(e)
	s.Quarter, s.TimeLeft = 4, "01:45"
	s.HomeScore, s.AwayScore = 17, 20

	got, effects := e.Tick(s)
	if got.TimeoutsLeft.Home != 2 {
		t.Fatalf("expected home timeout used, got %+v", got.TimeoutsLeft)
	}
	if got.TimeLeft != "02:00" {
		t.Fatalf("expected clock reset to 02:00, got %s", got.TimeLeft)
	}
	if !strings.HasPrefix(effects[0].Text, "Timeout called by Chiefs") {
		t.Fatalf("unexpected first effect %+v", effects[0])
	}
}

func TestUrgentTimeoutSkippedInBlowout(t *testing.T) {
	e := newScripted(&scriptedRand{})
	s := liveState(e)
	s.Quarter, s.TimeLeft = 4, "01:45"
	s.HomeScore, s.AwayScore = 3, 20

	got, _ := e.Tick(s)
	if got.TimeoutsLeft.Home != 3 || got.TimeLeft != "01:30" {
		t.Fatalf("expected no timeout, got %+v at %s", got.TimeoutsLeft, got.TimeLeft)
	}
}

func TestUrgentTimeoutDisabledInBasicProfile(t *testing.T) {
	e := newScripted(&scriptedRand{}, WithEvents(BasicEvents()))
	s := liveState(e)
	s.Quarter, s.TimeLeft = 4, "01:45"

	got, _ := e.Tick(s)
	if got.TimeoutsLeft.Home != 3 {
		t.Fatalf("expected no automatic timeout, got %+v", got.TimeoutsLeft)
	}
}

func TestClockOptions(t *testing.T) {
	e := newScripted(&scriptedRand{}, WithClockStep(30*time.Second), WithQuarterLength(5*time.Minute))
	s := e.NewGame()
	if s.TimeLeft != "05:00" {
		t.Fatalf("expected quarter length applied, got %s", s.TimeLeft)
	}
	s.Status, s.PlayType = StatusInProgress, PlayNormal
	got, _ := e.Tick(s)
	if got.TimeLeft != "04:30" {
		t.Fatalf("expected clock step applied, got %s", got.TimeLeft)
	}
}
