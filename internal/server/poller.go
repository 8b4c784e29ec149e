package server

import (
	"context"

	"github.com/preston-bernstein/gridiron-sim/internal/poller"
)

// Poller defines the roster poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// Simulations is the part of the simulations service the server manages.
type Simulations interface {
	StopAll(ctx context.Context) error
	Active() int
}

// Closer releases a component that has no shutdown deadline.
type Closer interface {
	Close()
}
