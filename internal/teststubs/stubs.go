package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

// StubTeamProvider is a test double for providers.TeamProvider.
type StubTeamProvider struct {
	Teams  []teams.Team
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchTeams returns configured teams and error while tracking calls.
// Notify, when set, is closed on the first call.
func (s *StubTeamProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Teams, s.Err
}

// StubPublisher records every published game snapshot.
type StubPublisher struct {
	mu        sync.Mutex
	Published []games.Game
	// Notify receives a copy of each snapshot when set; sends never block.
	Notify chan games.Game
}

// Publish stores the snapshot.
func (p *StubPublisher) Publish(g games.Game) {
	p.mu.Lock()
	p.Published = append(p.Published, g)
	p.mu.Unlock()
	if p.Notify != nil {
		select {
		case p.Notify <- g:
		default:
		}
	}
}

// Snapshots returns a copy of the published snapshots.
func (p *StubPublisher) Snapshots() []games.Game {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]games.Game, len(p.Published))
	copy(out, p.Published)
	return out
}

// Last returns the most recent snapshot, if any.
func (p *StubPublisher) Last() (games.Game, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Published) == 0 {
		return games.Game{}, false
	}
	return p.Published[len(p.Published)-1], true
}
