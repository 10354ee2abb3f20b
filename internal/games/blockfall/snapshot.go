package blockfall

import "github.com/vovakirdan/blockfall/internal/tetris"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Clock  int64 // milliseconds of simulated time
	Engine tetris.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{}
	}
	return Snapshot{
		Tick:   g.tick,
		Clock:  g.clock.Now().Milliseconds(),
		Engine: g.engine.Snapshot(),
	}
}
