package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/metrics"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
	"github.com/preston-bernstein/gridiron-sim/internal/teststubs"
)

type recordingSink struct {
	mu       sync.Mutex
	replaced [][]teams.Team
}

func (s *recordingSink) ReplaceTeams(items []teams.Team) bool {
	if len(items) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, items)
	return true
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replaced)
}

func TestPollerFetchesAndReplacesCatalog(t *testing.T) {
	provider := &teststubs.StubTeamProvider{
		Teams:  []teams.Team{{ID: "kc", Abbreviation: "KC"}, {ID: "buf", Abbreviation: "BUF"}},
		Notify: make(chan struct{}),
	}
	sink := &recordingSink{}

	p := New(provider, sink, nil, metrics.NewRecorder(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	deadline := time.Now().Add(time.Second)
	for sink.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	_ = p.Stop(context.Background())

	if sink.count() < 2 {
		t.Fatalf("expected initial and ticker refreshes, got %d", sink.count())
	}
	status := p.Status()
	if !status.IsReady() || status.Teams != 2 {
		t.Fatalf("expected ready status with 2 teams, got %+v", status)
	}
}

func TestPollerRefreshRecordsFailures(t *testing.T) {
	provider := &teststubs.StubTeamProvider{Err: errors.New("upstream down")}
	p := New(provider, &recordingSink{}, nil, nil, time.Hour)

	for i := 0; i < failuresBeforeUnready; i++ {
		if err := p.Refresh(context.Background()); err == nil {
			t.Fatalf("expected refresh error")
		}
	}

	status := p.Status()
	if status.ConsecutiveFailures != failuresBeforeUnready || status.LastError != "upstream down" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready without a success")
	}
}

func TestPollerEmptyCatalogIsFailure(t *testing.T) {
	sink := &recordingSink{}
	p := New(&teststubs.StubTeamProvider{}, sink, nil, nil, time.Hour)

	if err := p.Refresh(context.Background()); !errors.Is(err, errEmptyCatalog) {
		t.Fatalf("expected empty catalog error, got %v", err)
	}
	if sink.count() != 0 {
		t.Fatalf("expected sink untouched")
	}
}

func TestPollerNilProvider(t *testing.T) {
	p := New(nil, &recordingSink{}, nil, nil, time.Hour)
	if err := p.Refresh(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestStatusIsReady(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name   string
		status Status
		want   bool
	}{
		{"never succeeded", Status{}, false},
		{"recent success", Status{LastSuccess: now}, true},
		{"recovering", Status{LastSuccess: now, ConsecutiveFailures: 2}, true},
		{"failing", Status{LastSuccess: now, ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		if got := tc.status.IsReady(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	provider := &teststubs.StubTeamProvider{
		Teams:  []teams.Team{{ID: "a"}},
		Notify: make(chan struct{}),
	}

	p := New(provider, &recordingSink{}, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	time.Sleep(10 * time.Millisecond)
	callsAfterStop := provider.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if provider.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, provider.Calls.Load())
	}
}

func TestPollerStartAndStopAreIdempotent(t *testing.T) {
	p := New(&teststubs.StubTeamProvider{}, &recordingSink{}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubTeamProvider{}, &recordingSink{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}
