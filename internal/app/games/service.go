package games

import domaingames "github.com/preston-bernstein/gridiron-sim/internal/domain/games"

// Store defines the contract for persisting and retrieving game snapshots.
type Store interface {
	ListGames() []domaingames.Game
	GetGame(id string) (domaingames.Game, bool)
	SaveGame(g domaingames.Game)
	DeleteGame(id string) bool
}

// Service coordinates game operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Games returns the retained games, most recently updated first.
func (s *Service) Games() []domaingames.Game {
	return s.store.ListGames()
}

// GameByID returns a single game if present.
func (s *Service) GameByID(id string) (domaingames.Game, bool) {
	return s.store.GetGame(id)
}

// Publish records the latest snapshot of a game.
func (s *Service) Publish(g domaingames.Game) {
	s.store.SaveGame(g)
}

// Forget drops a game from history.
func (s *Service) Forget(id string) bool {
	return s.store.DeleteGame(id)
}
