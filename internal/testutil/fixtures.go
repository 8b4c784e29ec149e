package testutil

import (
	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/engine"
)

// SampleTeam returns an unrated team fixture for the abbreviation.
func SampleTeam(abbr string) teams.Team {
	return teams.Team{
		ID:           "team-" + abbr,
		Name:         abbr + " Team",
		FullName:     "Sample " + abbr + " Team",
		Abbreviation: abbr,
		City:         "Sample",
		Conference:   "AFC",
		Division:     "East",
		Color:        "#000000",
	}
}

// SampleTeams returns a small catalog.
func SampleTeams() []teams.Team {
	return []teams.Team{SampleTeam("KC"), SampleTeam("BUF"), SampleTeam("DAL")}
}

// SampleGame returns an in-progress game snapshot with the provided id.
func SampleGame(id string) games.Game {
	home := SampleTeam("KC")
	away := SampleTeam("BUF")
	home.OffenseRating, home.DefenseRating, home.SpecialTeamsRating = 80, 80, 80
	away.OffenseRating, away.DefenseRating, away.SpecialTeamsRating = 80, 80, 80
	return games.Game{
		ID:       id,
		Seed:     1,
		Profile:  "full",
		HomeTeam: home,
		AwayTeam: away,
		State: engine.GameState{
			HomeScore:     7,
			AwayScore:     3,
			Quarter:       2,
			TimeLeft:      "08:45",
			Down:          1,
			YardsToGo:     10,
			FieldPosition: 25,
			Possession:    engine.SideHome,
			Status:        engine.StatusInProgress,
			PlayType:      engine.PlayNormal,
			TimeoutsLeft:  engine.SideCount{Home: 3, Away: 3},
			Weather:       "Clear",
			Crowd:         60,
		},
		Commentary: []string{},
		Events:     []string{},
		Injuries:   []engine.Injury{},
	}
}
