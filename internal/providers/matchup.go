package providers

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

const (
	minAssignedRating  = 70
	assignedRatingSpan = 20
)

// Intn is the slice of a random source PickMatchup needs.
type Intn interface {
	IntN(n int) int
}

// PickMatchup chooses a home and away team from the catalog. Empty abbreviations
// are filled at random with distinct teams. Teams without ratings get ratings
// drawn uniformly from [70, 89].
func PickMatchup(catalog []teams.Team, rng Intn, homeAbbr, awayAbbr string) (teams.Team, teams.Team, error) {
	if len(catalog) < 2 {
		return teams.Team{}, teams.Team{}, ErrNotEnoughTeams
	}

	homeIdx, err := resolveTeam(catalog, homeAbbr)
	if err != nil {
		return teams.Team{}, teams.Team{}, err
	}
	awayIdx, err := resolveTeam(catalog, awayAbbr)
	if err != nil {
		return teams.Team{}, teams.Team{}, err
	}
	if homeIdx >= 0 && homeIdx == awayIdx {
		return teams.Team{}, teams.Team{}, fmt.Errorf("%w: %s cannot play itself", ErrUnknownTeam, homeAbbr)
	}

	if homeIdx < 0 {
		homeIdx = pickOther(len(catalog), rng, awayIdx)
	}
	if awayIdx < 0 {
		awayIdx = pickOther(len(catalog), rng, homeIdx)
	}

	return withRatings(catalog[homeIdx], rng), withRatings(catalog[awayIdx], rng), nil
}

// resolveTeam returns the catalog index for abbr, -1 when abbr is empty.
func resolveTeam(catalog []teams.Team, abbr string) (int, error) {
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		return -1, nil
	}
	for i, t := range catalog {
		if strings.EqualFold(t.Abbreviation, abbr) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownTeam, abbr)
}

// pickOther draws an index in [0, n) that differs from taken (when taken >= 0).
func pickOther(n int, rng Intn, taken int) int {
	if taken < 0 {
		return rng.IntN(n)
	}
	idx := rng.IntN(n - 1)
	if idx >= taken {
		idx++
	}
	return idx
}

func withRatings(t teams.Team, rng Intn) teams.Team {
	if t.Rated() {
		return t
	}
	t.OffenseRating = minAssignedRating + rng.IntN(assignedRatingSpan)
	t.DefenseRating = minAssignedRating + rng.IntN(assignedRatingSpan)
	t.SpecialTeamsRating = minAssignedRating + rng.IntN(assignedRatingSpan)
	return t
}
