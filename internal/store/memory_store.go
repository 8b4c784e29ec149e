package store

import (
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

// DefaultRetainedGames caps the game history when no size is given.
const DefaultRetainedGames = 200

// MemoryStore keeps thread-safe snapshots of games and teams in memory.
// Games live in an LRU keyed by id so the least recently updated ones age out.
type MemoryStore struct {
	mu    sync.RWMutex
	games *lru.Cache[string, games.Game]
	teams map[string]teams.Team
}

// NewMemoryStore constructs an empty MemoryStore retaining at most maxGames games.
func NewMemoryStore(maxGames int) *MemoryStore {
	if maxGames <= 0 {
		maxGames = DefaultRetainedGames
	}
	cache, _ := lru.New[string, games.Game](maxGames)
	return &MemoryStore{
		games: cache,
		teams: make(map[string]teams.Team),
	}
}

// SaveGame inserts or replaces a game snapshot and marks it most recent.
func (s *MemoryStore) SaveGame(g games.Game) {
	s.games.Add(g.ID, g)
}

// ListGames returns games most recently updated first.
func (s *MemoryStore) ListGames() []games.Game {
	values := s.games.Values()
	result := make([]games.Game, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		result = append(result, values[i])
	}
	return result
}

// GetGame retrieves a game by ID without touching its recency.
func (s *MemoryStore) GetGame(id string) (games.Game, bool) {
	return s.games.Peek(id)
}

// DeleteGame removes a game, reporting whether it was present.
func (s *MemoryStore) DeleteGame(id string) bool {
	return s.games.Remove(id)
}

// ListTeams returns a copy of the team catalog ordered by abbreviation.
func (s *MemoryStore) ListTeams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]teams.Team, 0, len(s.teams))
	for _, t := range s.teams {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Abbreviation < result[j].Abbreviation
	})
	return result
}

// GetTeam retrieves a team by ID or, failing that, by abbreviation (case-insensitive).
func (s *MemoryStore) GetTeam(key string) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.teams[key]; ok {
		return t, true
	}
	for _, t := range s.teams {
		if strings.EqualFold(t.Abbreviation, key) {
			return t, true
		}
	}
	return teams.Team{}, false
}

// SetTeams replaces the existing catalog with a new snapshot.
func (s *MemoryStore) SetTeams(items []teams.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = make(map[string]teams.Team, len(items))
	for _, t := range items {
		s.teams[t.ID] = t
	}
}
