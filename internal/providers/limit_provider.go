package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a TeamProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     TeamProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns a TeamProvider that spaces calls at least interval apart.
// The first call goes straight through; later calls block until the interval elapses.
func NewRateLimitedProvider(next TeamProvider, interval time.Duration, logger *slog.Logger) TeamProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return nil, ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		wait := p.interval - p.now().Sub(p.last)
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled")
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	p.last = p.now()

	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch")
	return p.next.FetchTeams(ctx)
}
