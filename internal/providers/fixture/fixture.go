package fixture

import (
	"context"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

// Provider returns the static NFL catalog, useful for local runs and tests.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

type entry struct {
	abbr, city, name, conference, division string
}

var league = []entry{
	{"BUF", "Buffalo", "Bills", "AFC", "East"},
	{"MIA", "Miami", "Dolphins", "AFC", "East"},
	{"NE", "New England", "Patriots", "AFC", "East"},
	{"NYJ", "New York", "Jets", "AFC", "East"},
	{"BAL", "Baltimore", "Ravens", "AFC", "North"},
	{"CIN", "Cincinnati", "Bengals", "AFC", "North"},
	{"CLE", "Cleveland", "Browns", "AFC", "North"},
	{"PIT", "Pittsburgh", "Steelers", "AFC", "North"},
	{"HOU", "Houston", "Texans", "AFC", "South"},
	{"IND", "Indianapolis", "Colts", "AFC", "South"},
	{"JAX", "Jacksonville", "Jaguars", "AFC", "South"},
	{"TEN", "Tennessee", "Titans", "AFC", "South"},
	{"DEN", "Denver", "Broncos", "AFC", "West"},
	{"KC", "Kansas City", "Chiefs", "AFC", "West"},
	{"LV", "Las Vegas", "Raiders", "AFC", "West"},
	{"LAC", "Los Angeles", "Chargers", "AFC", "West"},
	{"DAL", "Dallas", "Cowboys", "NFC", "East"},
	{"NYG", "New York", "Giants", "NFC", "East"},
	{"PHI", "Philadelphia", "Eagles", "NFC", "East"},
	{"WAS", "Washington", "Commanders", "NFC", "East"},
	{"CHI", "Chicago", "Bears", "NFC", "North"},
	{"DET", "Detroit", "Lions", "NFC", "North"},
	{"GB", "Green Bay", "Packers", "NFC", "North"},
	{"MIN", "Minnesota", "Vikings", "NFC", "North"},
	{"ATL", "Atlanta", "Falcons", "NFC", "South"},
	{"CAR", "Carolina", "Panthers", "NFC", "South"},
	{"NO", "New Orleans", "Saints", "NFC", "South"},
	{"TB", "Tampa Bay", "Buccaneers", "NFC", "South"},
	{"ARI", "Arizona", "Cardinals", "NFC", "West"},
	{"LAR", "Los Angeles", "Rams", "NFC", "West"},
	{"SF", "San Francisco", "49ers", "NFC", "West"},
	{"SEA", "Seattle", "Seahawks", "NFC", "West"},
}

// FetchTeams returns all 32 teams, unrated, with branding applied.
func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	out := make([]teams.Team, 0, len(league))
	for _, e := range league {
		out = append(out, providers.ApplyBranding(teams.Team{
			ID:           "fixture-" + e.abbr,
			Name:         e.name,
			FullName:     e.city + " " + e.name,
			Abbreviation: e.abbr,
			City:         e.city,
			Conference:   e.conference,
			Division:     e.division,
		}))
	}
	return out, nil
}
