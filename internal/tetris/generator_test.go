package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorNoRepeatWithinMemory(t *testing.T) {
	for _, seed := range []int64{1, 42, 12345, 987654321} {
		g := NewGenerator(rand.New(rand.NewSource(seed)), DefaultMemory)

		var generated []Shape
		for i := 0; i < 2000; i++ {
			generated = append(generated, g.Next().Shape)
		}

		for i := 3; i < len(generated); i++ {
			window := generated[i-3 : i]
			require.NotContains(t, window, generated[i], "seed %d: shape %s at %d repeats %v", seed, generated[i], i, window)
		}
	}
}

func TestGeneratorMemoryTrimmed(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)), DefaultMemory)
	var last []Shape
	for i := 0; i < 10; i++ {
		last = append(last, g.Next().Shape)
	}
	assert.Equal(t, last[len(last)-3:], g.Recent())

	g.Reset()
	assert.Empty(t, g.Recent())
}

func TestGeneratorCoversCatalog(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(8)), DefaultMemory)
	shapes := make(map[Shape]int)
	orientations := make(map[Orientation]int)
	for i := 0; i < 700; i++ {
		bl := g.Next()
		shapes[bl.Shape]++
		orientations[bl.Orientation]++
		assert.False(t, bl.IsFalling(), "generated blocks are not yet placed")
	}
	assert.Len(t, shapes, ShapeCount)
	assert.Len(t, orientations, 4)
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(77)), DefaultMemory)
	b := NewGenerator(rand.New(rand.NewSource(77)), DefaultMemory)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestGeneratorRejectsExhaustingMemory(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { NewGenerator(rng, ShapeCount) })
	assert.Panics(t, func() { NewGenerator(rng, -1) })
	assert.NotPanics(t, func() { NewGenerator(rng, ShapeCount-1) })
}

func TestGeneratorLargestWindowCyclesCatalog(t *testing.T) {
	// With memory 6 only one candidate is ever left, so every window of
	// seven consecutive pieces is a permutation of the catalog.
	g := NewGenerator(rand.New(rand.NewSource(5)), ShapeCount-1)
	var got []Shape
	for i := 0; i < 21; i++ {
		got = append(got, g.Next().Shape)
	}
	for i := 0; i+ShapeCount <= len(got); i++ {
		assert.ElementsMatch(t, Shapes[:], got[i:i+ShapeCount])
	}
}
