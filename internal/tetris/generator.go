package tetris

import (
	"fmt"
	"math/rand"
)

// DefaultMemory is how many recent shapes the generator refuses to repeat.
const DefaultMemory = 3

// Generator produces new blocks, never repeating any of the last Memory
// shapes it handed out.
type Generator struct {
	rng    *rand.Rand
	memory int
	recent []Shape
}

// NewGenerator creates a generator drawing from rng. It panics if memory
// would leave no candidate shape.
func NewGenerator(rng *rand.Rand, memory int) *Generator {
	if memory < 0 || memory >= ShapeCount {
		panic(fmt.Sprintf("tetris: generator memory %d must be in [0, %d)", memory, ShapeCount))
	}
	return &Generator{
		rng:    rng,
		memory: memory,
		recent: make([]Shape, 0, memory+1),
	}
}

// Reset forgets the recently generated shapes.
func (g *Generator) Reset() {
	g.recent = g.recent[:0]
}

// Recent returns a copy of the remembered shapes, oldest first.
func (g *Generator) Recent() []Shape {
	out := make([]Shape, len(g.recent))
	copy(out, g.recent)
	return out
}

// Next returns a new unplaced block with a shape outside the memory window
// and a uniformly random orientation.
func (g *Generator) Next() Block {
	candidates := make([]Shape, 0, ShapeCount)
	for _, s := range Shapes {
		if !g.remembers(s) {
			candidates = append(candidates, s)
		}
	}

	shape := candidates[g.rng.Intn(len(candidates))]
	orientation := Orientations[g.rng.Intn(len(Orientations))]

	g.recent = append(g.recent, shape)
	if len(g.recent) > g.memory {
		g.recent = g.recent[len(g.recent)-g.memory:]
	}

	return NewBlock(shape, orientation)
}

func (g *Generator) remembers(s Shape) bool {
	for _, r := range g.recent {
		if r == s {
			return true
		}
	}
	return false
}
