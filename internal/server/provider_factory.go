package server

import (
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/config"
	"github.com/preston-bernstein/gridiron-sim/internal/metrics"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
	"github.com/preston-bernstein/gridiron-sim/internal/providers/balldontlie"
	"github.com/preston-bernstein/gridiron-sim/internal/providers/fixture"
)

const (
	providerFixture     = "fixture"
	providerBalldontlie = "balldontlie"

	// balldontlie's free tier allows 5 requests per minute.
	balldontlieInterval = 12 * time.Second
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.TeamProvider {
	base, name := selectProvider(cfg, f.logger)
	if name == providerBalldontlie {
		base = providers.NewRateLimitedProvider(base, balldontlieInterval, f.logger)
	}
	return providers.NewRetryingProvider(base, f.logger, f.metrics, name, 0, 0)
}

// selectProvider returns the configured roster source and its canonical name.
func selectProvider(cfg config.Config, logger *slog.Logger) (providers.TeamProvider, string) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providerFixture, "":
		return fixture.New(), providerFixture
	case providerBalldontlie:
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL: cfg.Balldontlie.BaseURL,
			APIKey:  cfg.Balldontlie.APIKey,
		}), providerBalldontlie
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(), providerFixture
	}
}
