package providers

import (
	"context"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

// TeamProvider fetches the normalized team catalog from an upstream source.
type TeamProvider interface {
	FetchTeams(ctx context.Context) ([]teams.Team, error)
}
