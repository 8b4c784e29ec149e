package testutil

import (
	"context"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

// GoodProvider returns the provided teams with no error.
type GoodProvider struct {
	Teams []teams.Team
}

func (p GoodProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	return p.Teams, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	return nil, providers.ErrProviderUnavailable
}
