package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	Provider    string
	Roster      RosterConfig
	Simulation  SimulationConfig
	Balldontlie BalldontlieConfig
	Metrics     MetricsConfig
	// AdminToken guards admin endpoints; empty disables them.
	AdminToken string
}

// RosterConfig controls the team catalog refresh loop.
type RosterConfig struct {
	PollInterval Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:      envOrDefault(envPort, defaultPort),
		LogLevel:  envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat: envOrDefault(envLogFormat, defaultLogFormat),
		Provider:  envOrDefault(envProvider, defaultProvider),
		Roster: RosterConfig{
			PollInterval: durationEnvOrDefault(envRosterPollInterval, defaultRosterPollInterval),
		},
		Simulation:  loadSimulation(),
		Balldontlie: loadBalldontlie(),
		Metrics:     loadMetrics(),
		AdminToken:  envOrDefault(envAdminToken, ""),
	}
}
