// Package registry keeps the set of playable board variants. Variants
// register a factory from init(); hosts list and create them by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is a self-contained simulation driven one frame at a time by a host.
// Implementations must not import any UI package: the host owns key
// mapping, the frame clock and drawing to the terminal.
type Game interface {
	// ID is the stable key used on the command line and in the score table.
	ID() string

	// Title is the name shown in menus.
	Title() string

	// Reset starts a fresh game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances time by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, lines and the paused/over flags.
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size without
// losing progress. Platforms fall back to Reset for games that do not.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet reset, game.
type Factory func() Game

type entry struct {
	title string
	make  Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a variant. The title is read from a throwaway instance.
// Registering the same ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), make: f}
}

// List returns all variants ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a new instance of the variant id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.make(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
