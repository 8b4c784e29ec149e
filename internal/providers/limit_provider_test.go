package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/gridiron-sim/internal/teststubs"
)

func TestRateLimitedProviderFirstCallIsImmediate(t *testing.T) {
	inner := &teststubs.StubTeamProvider{}
	rl := NewRateLimitedProvider(inner, time.Hour, nil)

	done := make(chan error, 1)
	go func() {
		_, err := rl.FetchTeams(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected first call not to wait for the interval")
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner provider called once, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &teststubs.StubTeamProvider{}
	rl := NewRateLimitedProvider(inner, 20*time.Millisecond, nil)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := rl.FetchTeams(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second call to wait for interval, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected 2 inner calls, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubTeamProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)
	if _, err := rl.FetchTeams(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchTeams(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner TeamProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	if _, err := rl.FetchTeams(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubTeamProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != time.Minute {
		t.Fatalf("expected default interval 1m, got %s", rl.interval)
	}
}
