package providers

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/engine"
)

type seqIntn struct {
	values []int
}

func (s *seqIntn) IntN(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return min(v, n-1)
}

func catalog() []teams.Team {
	return []teams.Team{
		{ID: "1", Abbreviation: "BUF"},
		{ID: "2", Abbreviation: "KC"},
		{ID: "3", Abbreviation: "DAL", OffenseRating: 95, DefenseRating: 60, SpecialTeamsRating: 75},
	}
}

func TestPickMatchupRequiresTwoTeams(t *testing.T) {
	_, _, err := PickMatchup([]teams.Team{{Abbreviation: "KC"}}, &seqIntn{}, "", "")
	if !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams, got %v", err)
	}
}

func TestPickMatchupUnknownAbbreviation(t *testing.T) {
	_, _, err := PickMatchup(catalog(), &seqIntn{}, "NYJ", "")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}

func TestPickMatchupRejectsSameTeam(t *testing.T) {
	_, _, err := PickMatchup(catalog(), &seqIntn{}, "kc", "KC")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected error for self matchup, got %v", err)
	}
}

func TestPickMatchupHonorsRequestedTeamsAndKeepsRatings(t *testing.T) {
	home, away, err := PickMatchup(catalog(), &seqIntn{values: []int{0, 19, 5}}, "dal", "BUF")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if home.Abbreviation != "DAL" || away.Abbreviation != "BUF" {
		t.Fatalf("unexpected matchup %s vs %s", home.Abbreviation, away.Abbreviation)
	}
	if home.OffenseRating != 95 || home.DefenseRating != 60 {
		t.Fatalf("expected existing ratings kept, got %+v", home)
	}
	if away.OffenseRating != 70 || away.DefenseRating != 89 || away.SpecialTeamsRating != 75 {
		t.Fatalf("expected assigned ratings 70/89/75, got %+v", away)
	}
}

func TestPickMatchupRandomTeamsAreDistinct(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		home, away, err := PickMatchup(catalog(), engine.NewRand(seed), "", "")
		if err != nil {
			t.Fatalf("seed %d: unexpected error %v", seed, err)
		}
		if home.Abbreviation == away.Abbreviation {
			t.Fatalf("seed %d: team drawn twice: %s", seed, home.Abbreviation)
		}
		for _, team := range []teams.Team{home, away} {
			if team.Abbreviation == "DAL" {
				continue
			}
			for _, r := range []int{team.OffenseRating, team.DefenseRating, team.SpecialTeamsRating} {
				if r < 70 || r > 89 {
					t.Fatalf("seed %d: %s rating out of range %d", seed, team.Abbreviation, r)
				}
			}
		}
	}
}

func TestPickMatchupFillsOpponentAroundRequestedTeam(t *testing.T) {
	// IntN(2) returns 1, skipping past the taken index 0.
	home, away, err := PickMatchup(catalog(), &seqIntn{values: []int{1}}, "", "BUF")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if away.Abbreviation != "BUF" || home.Abbreviation != "DAL" {
		t.Fatalf("unexpected matchup %s vs %s", home.Abbreviation, away.Abbreviation)
	}
}
