package config

import "time"

const (
	envPort               = "PORT"
	envLogLevel           = "LOG_LEVEL"
	envLogFormat          = "LOG_FORMAT"
	envProvider           = "PROVIDER"
	envRosterPollInterval = "ROSTER_POLL_INTERVAL"
	envTickInterval       = "TICK_INTERVAL"
	envClockStep          = "CLOCK_STEP"
	envCoinTossDelay      = "COIN_TOSS_DELAY"
	envEventProfile       = "EVENT_PROFILE"
	envMaxActiveGames     = "MAX_ACTIVE_GAMES"
	envMaxRetainedGames   = "MAX_RETAINED_GAMES"
	envCommentaryLimit    = "COMMENTARY_LIMIT"
	envEventLimit         = "EVENT_LIMIT"
	envInjuryLimit        = "INJURY_LIMIT"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken         = "ADMIN_TOKEN"

	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultProvider  = "fixture"
	// Team catalogs change rarely; balldontlie's free tier allows 5 req/min.
	defaultRosterPollInterval = 30 * Duration(time.Minute)
	defaultTickInterval       = 3 * Duration(time.Second)
	defaultClockStep          = 15 * Duration(time.Second)
	defaultCoinTossDelay      = 3 * Duration(time.Second)
	defaultEventProfile       = ProfileFull
	defaultMaxActiveGames     = 50
	defaultMaxRetainedGames   = 200
	defaultCommentaryLimit    = 10
	defaultEventLimit         = 5
	defaultInjuryLimit        = 5
	defaultMetricsPort        = "9090"
	defaultServiceName        = "gridiron-sim"
)
