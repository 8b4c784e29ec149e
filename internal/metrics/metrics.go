package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type gameStats struct {
	started  int
	finished int
	ticks    int
	plays    map[string]int
	points   int
	lastTick time.Duration
}

// Recorder keeps in-memory counters for provider calls and simulations and
// forwards every observation to OpenTelemetry when instruments are attached.
type Recorder struct {
	mu        sync.Mutex
	providers map[string]*providerStats
	games     gameStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		games:     gameStats{plays: make(map[string]int)},
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.withProvider(provider, func(stats *providerStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.withProvider(provider, func(stats *providerStats) {
		stats.rateLimitHits++
		if retryAfter > 0 {
			stats.lastRetryAfter = retryAfter
		}
	})
	r.otel.recordRateLimit(provider, retryAfter)
}

// ProviderSnapshot is a copy of the counters recorded for one provider.
type ProviderSnapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// Provider returns the current stats for the provider.
func (r *Recorder) Provider(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok {
		return ProviderSnapshot{}
	}
	return ProviderSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks roster poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordGameStarted counts a newly launched simulation.
func (r *Recorder) RecordGameStarted(profile string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.games.started++
	r.mu.Unlock()
	r.otel.recordGameStarted(profile)
}

// RecordGameFinished counts a simulation leaving the active set.
func (r *Recorder) RecordGameFinished(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.games.finished++
	r.mu.Unlock()
	r.otel.recordGameFinished(outcome)
}

// RecordTick tracks how long one clock tick took to compute and publish.
func (r *Recorder) RecordTick(duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.games.ticks++
	r.games.lastTick = duration
	r.mu.Unlock()
	r.otel.recordTick(duration)
}

// RecordPlay counts a resolved snap by play type.
func (r *Recorder) RecordPlay(play string) {
	if r == nil || play == "" {
		return
	}
	r.mu.Lock()
	r.games.plays[play]++
	r.mu.Unlock()
	r.otel.recordPlay(play)
}

// RecordScore adds points scored in any game.
func (r *Recorder) RecordScore(points int) {
	if r == nil || points <= 0 {
		return
	}
	r.mu.Lock()
	r.games.points += points
	r.mu.Unlock()
	r.otel.recordScore(points)
}

// GameSnapshot is a copy of the simulation counters.
type GameSnapshot struct {
	Started      int
	Finished     int
	Ticks        int
	Points       int
	Plays        map[string]int
	LastTickTime time.Duration
}

// Active is the number of started games that have not finished.
func (s GameSnapshot) Active() int {
	return s.Started - s.Finished
}

// Games returns the current simulation counters.
func (r *Recorder) Games() GameSnapshot {
	if r == nil {
		return GameSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	plays := make(map[string]int, len(r.games.plays))
	for k, v := range r.games.plays {
		plays[k] = v
	}
	return GameSnapshot{
		Started:      r.games.started,
		Finished:     r.games.finished,
		Ticks:        r.games.ticks,
		Points:       r.games.points,
		Plays:        plays,
		LastTickTime: r.games.lastTick,
	}
}

func (r *Recorder) withProvider(provider string, fn func(*providerStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	fn(stats)
}
