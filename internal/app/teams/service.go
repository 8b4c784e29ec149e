package teams

import "github.com/preston-bernstein/gridiron-sim/internal/domain/teams"

// Store defines the contract for persisting and retrieving teams.
type Store interface {
	ListTeams() []teams.Team
	GetTeam(key string) (teams.Team, bool)
	SetTeams([]teams.Team)
}

// Service coordinates team catalog operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Teams returns the current catalog.
func (s *Service) Teams() []teams.Team {
	return s.store.ListTeams()
}

// Team looks a team up by id or abbreviation.
func (s *Service) Team(key string) (teams.Team, bool) {
	return s.store.GetTeam(key)
}

// ReplaceTeams swaps the catalog with a new snapshot. Empty snapshots are
// ignored so a bad upstream response never wipes the catalog.
func (s *Service) ReplaceTeams(items []teams.Team) bool {
	if len(items) == 0 {
		return false
	}
	s.store.SetTeams(items)
	return true
}
