package driver

import "github.com/preston-bernstein/gridiron-sim/internal/domain/games"

// Fanout publishes each snapshot to every publisher in order. Nil entries are skipped.
type Fanout []Publisher

func (f Fanout) Publish(g games.Game) {
	for _, p := range f {
		if p != nil {
			p.Publish(g)
		}
	}
}
