package teams

import (
	"strings"
	"testing"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

type stubTeamStore struct {
	items []teams.Team
}

func (s *stubTeamStore) ListTeams() []teams.Team { return s.items }
func (s *stubTeamStore) GetTeam(key string) (teams.Team, bool) {
	for _, t := range s.items {
		if t.ID == key || strings.EqualFold(t.Abbreviation, key) {
			return t, true
		}
	}
	return teams.Team{}, false
}
func (s *stubTeamStore) SetTeams(items []teams.Team) { s.items = items }

func TestTeamsService(t *testing.T) {
	store := &stubTeamStore{items: []teams.Team{{ID: "t1", Abbreviation: "KC"}}}
	svc := NewService(store)

	if len(svc.Teams()) != 1 {
		t.Fatalf("expected teams from store")
	}
	if _, ok := svc.Team("kc"); !ok {
		t.Fatalf("expected team by abbreviation")
	}

	if !svc.ReplaceTeams([]teams.Team{{ID: "t2"}}) {
		t.Fatalf("expected replace to succeed")
	}
	if len(store.items) != 1 || store.items[0].ID != "t2" {
		t.Fatalf("expected replace to set store items")
	}
}

func TestReplaceTeamsIgnoresEmptySnapshot(t *testing.T) {
	store := &stubTeamStore{items: []teams.Team{{ID: "t1"}}}
	svc := NewService(store)

	if svc.ReplaceTeams(nil) {
		t.Fatalf("expected empty replace to be rejected")
	}
	if len(store.items) != 1 {
		t.Fatalf("expected catalog to survive empty replace")
	}
}
