package engine

// Side identifies one of the two teams in a game.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Status is the game lifecycle state.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusCoinToss   Status = "COIN_TOSS"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
)

// PlayType selects the transition Advance dispatches to next.
type PlayType string

const (
	PlayKickoff            PlayType = "kickoff"
	PlayNormal             PlayType = "normal"
	PlayExtraPoint         PlayType = "extraPoint"
	PlayTwoPointConversion PlayType = "twoPointConversion"
)

// Tie is the winner value for a game that ends level.
const Tie = "TIE"

// SideCount holds a per-side counter.
type SideCount struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Get returns the count for side.
func (c SideCount) Get(side Side) int {
	if side == SideHome {
		return c.Home
	}
	return c.Away
}

// Add returns a copy with delta applied to side, never dropping below zero.
func (c SideCount) Add(side Side, delta int) SideCount {
	if side == SideHome {
		c.Home = max(c.Home+delta, 0)
	} else {
		c.Away = max(c.Away+delta, 0)
	}
	return c
}

// GameState is the complete scoreboard state. Transitions take a value and return a new one.
type GameState struct {
	HomeScore     int       `json:"homeScore"`
	AwayScore     int       `json:"awayScore"`
	Quarter       int       `json:"quarter"`
	TimeLeft      string    `json:"timeLeft"`
	Down          int       `json:"down"`
	YardsToGo     int       `json:"yardsToGo"`
	FieldPosition int       `json:"fieldPosition"`
	Possession    Side      `json:"possession"`
	Status        Status    `json:"gameStatus"`
	LastPlay      string    `json:"lastPlay"`
	DriveStatus   string    `json:"driveStatus"`
	PlayType      PlayType  `json:"playType"`
	LastPlayKind  PlayKind  `json:"lastPlayKind,omitempty"`
	TimeoutsLeft  SideCount `json:"timeoutsLeft"`
	Penalties     SideCount `json:"penalties"`
	Turnovers     SideCount `json:"turnovers"`
	Weather       string    `json:"weather"`
	Crowd         int       `json:"crowd"`
	Winner        string    `json:"winner,omitempty"`
}

// Score returns the points for side.
func (s GameState) Score(side Side) int {
	if side == SideHome {
		return s.HomeScore
	}
	return s.AwayScore
}

// ScoreDiff returns home minus away.
func (s GameState) ScoreDiff() int {
	return s.HomeScore - s.AwayScore
}

func (s GameState) addPoints(side Side, points int) GameState {
	if side == SideHome {
		s.HomeScore += points
	} else {
		s.AwayScore += points
	}
	return s
}

// changePossession hands the ball to the other side with a fresh set of downs.
func (s GameState) changePossession() GameState {
	s.Possession = s.Possession.Other()
	s.Down = 1
	s.YardsToGo = firstDownYards
	return s
}

// clampField keeps the drive counters inside their valid ranges.
func (s GameState) clampField() GameState {
	s.FieldPosition = clamp(s.FieldPosition, 0, fieldLength)
	s.YardsToGo = max(s.YardsToGo, 0)
	s.Down = clamp(s.Down, 1, 4)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
