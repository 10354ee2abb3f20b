package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
)

// autopilotMoves weights the actions the autopilot picks from. ActionNone
// lets gravity work between moves.
var autopilotMoves = []core.Action{
	core.ActionLeft, core.ActionLeft, core.ActionLeft,
	core.ActionRight, core.ActionRight, core.ActionRight,
	core.ActionRotate, core.ActionRotate,
	core.ActionDrop,
	core.ActionNone, core.ActionNone, core.ActionNone,
}

// Autopilot produces seeded pseudo-random input for headless runs.
type Autopilot struct {
	rng   *rand.Rand
	every int
	frame int
}

// NewAutopilot returns an autopilot that acts once every `every` frames.
func NewAutopilot(seed int64, every int) *Autopilot {
	if every < 1 {
		every = 1
	}
	return &Autopilot{rng: rand.New(rand.NewSource(seed)), every: every}
}

// Next returns the input for the next frame.
func (a *Autopilot) Next() core.InputFrame {
	in := core.NewInputFrame()
	a.frame++
	if a.frame%a.every != 0 {
		return in
	}
	in.Set(autopilotMoves[a.rng.Intn(len(autopilotMoves))])
	return in
}
