package config

import "strings"

// Event profiles selectable through EVENT_PROFILE.
const (
	ProfileFull  = "full"
	ProfileBasic = "basic"
)

// SimulationConfig controls game pacing and retention.
type SimulationConfig struct {
	TickInterval     Duration
	ClockStep        Duration
	CoinTossDelay    Duration
	EventProfile     string
	MaxActiveGames   int
	MaxRetainedGames int
	CommentaryLimit  int
	EventLimit       int
	InjuryLimit      int
}

func loadSimulation() SimulationConfig {
	return SimulationConfig{
		TickInterval:     durationEnvOrDefault(envTickInterval, defaultTickInterval),
		ClockStep:        durationEnvOrDefault(envClockStep, defaultClockStep),
		CoinTossDelay:    durationEnvOrDefault(envCoinTossDelay, defaultCoinTossDelay),
		EventProfile:     normalizeProfile(envOrDefault(envEventProfile, defaultEventProfile)),
		MaxActiveGames:   intEnvOrDefault(envMaxActiveGames, defaultMaxActiveGames),
		MaxRetainedGames: intEnvOrDefault(envMaxRetainedGames, defaultMaxRetainedGames),
		CommentaryLimit:  intEnvOrDefault(envCommentaryLimit, defaultCommentaryLimit),
		EventLimit:       intEnvOrDefault(envEventLimit, defaultEventLimit),
		InjuryLimit:      intEnvOrDefault(envInjuryLimit, defaultInjuryLimit),
	}
}

func normalizeProfile(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), ProfileBasic) {
		return ProfileBasic
	}
	return ProfileFull
}
