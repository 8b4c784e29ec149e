package testutil

import (
	appgames "github.com/preston-bernstein/gridiron-sim/internal/app/games"
	appteams "github.com/preston-bernstein/gridiron-sim/internal/app/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/store"
)

// NewServices builds games and teams services over one in-memory store, preloaded.
func NewServices(g []games.Game, t []teams.Team) (*appgames.Service, *appteams.Service) {
	ms := store.NewMemoryStore(0)
	for _, game := range g {
		ms.SaveGame(game)
	}
	if len(t) > 0 {
		ms.SetTeams(t)
	}
	return appgames.NewService(ms), appteams.NewService(ms)
}
