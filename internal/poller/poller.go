package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/metrics"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

const (
	defaultInterval = 30 * time.Minute
	// failuresBeforeUnready is how many failed cycles in a row flip readiness.
	failuresBeforeUnready = 3
)

var errEmptyCatalog = errors.New("provider returned no teams")

// TeamSink receives refreshed team catalogs.
type TeamSink interface {
	ReplaceTeams(items []teams.Team) bool
}

// Poller refreshes the team catalog from a provider on an interval.
type Poller struct {
	provider providers.TeamProvider
	sink     TeamSink
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	Teams               int       `json:"teams"`
}

// IsReady reports whether the poller has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < failuresBeforeUnready
}

// New constructs a Poller with sane defaults.
func New(provider providers.TeamProvider, sink TeamSink, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		sink:     sink,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		defer p.ticker.Stop()
		logging.Info(p.logger, "roster poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm the catalog on boot so games can start immediately.
		p.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info(p.logger, "roster poller stopped")
				return
			case <-p.done:
				logging.Info(p.logger, "roster poller stopped")
				return
			case <-p.ticker.C:
				p.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
	})
	return nil
}

// Refresh runs one fetch-and-replace cycle and returns its error.
func (p *Poller) Refresh(ctx context.Context) error {
	start := time.Now()
	p.recordAttempt(start)

	items, err := p.fetch(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "roster refresh failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err)
		return err
	}

	p.recordSuccess(start, len(items))
	logging.Info(p.logger, "roster refreshed",
		logging.FieldCount, len(items),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) fetch(ctx context.Context) ([]teams.Team, error) {
	if p.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	items, err := p.provider.FetchTeams(ctx)
	if err != nil {
		return nil, err
	}
	if p.sink != nil && !p.sink.ReplaceTeams(items) {
		return nil, errEmptyCatalog
	}
	return items, nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Teams = count
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
