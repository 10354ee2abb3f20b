// Package blockfall adapts the tetris engine to the platform's Game
// interface. The engine's gravity timer runs on a ClockScheduler that the
// fixed frame clock advances, so a game is fully reproducible from its seed
// and input sequence.
package blockfall

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Registered game IDs.
const (
	ID     = "blockfall"
	MiniID = "blockfall_mini"
)

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultBlockfallConfig()
)

// Configure sets the configuration used by games created afterwards through
// the registry. The mini variant keeps its own board size.
func Configure(cfg config.BlockfallConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// Settings returns the configuration new games are created with.
func Settings() config.BlockfallConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New(Settings())
	})
	registry.Register(MiniID, func() registry.Game {
		return NewMini(Settings())
	})
}

// Game implements registry.Game on top of a tetris.Engine.
type Game struct {
	id    string
	title string
	cfg   config.BlockfallConfig

	engine *tetris.Engine
	clock  *tetris.ClockScheduler
	logger *log.Logger
	seeds  *rand.Rand // seeds for restarts
	frame  time.Duration
	tick   uint64

	events     []string // events emitted during the current Step
	flash      string   // short HUD message after a line clear
	flashTicks int
	tickRate   int

	screenW  int
	screenH  int
	layout   layout
	tooSmall bool
}

// New creates a blockfall game with the given configuration.
func New(cfg config.BlockfallConfig) *Game {
	return &Game{id: ID, title: "Blockfall", cfg: cfg}
}

// NewMini creates the smallest playable variant: a 4x10 board with the
// speed and generator settings of cfg.
func NewMini(cfg config.BlockfallConfig) *Game {
	cfg.Board = config.MiniBlockfallConfig().Board
	return &Game{id: MiniID, title: "Blockfall Mini", cfg: cfg}
}

// Create builds the variant with the given ID using cfg instead of the
// package settings.
func Create(id string, cfg config.BlockfallConfig) (*Game, error) {
	switch id {
	case ID:
		return New(cfg), nil
	case MiniID:
		return NewMini(cfg), nil
	}
	return nil, fmt.Errorf("blockfall: unknown variant %q", id)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.BlockfallConfig {
	return g.cfg
}

// SetDifficulty switches the speed curve to preset from the next Reset. The
// configured step is kept when preset is already the configured one.
func (g *Game) SetDifficulty(preset config.DifficultyPreset) {
	if preset == g.cfg.Difficulty {
		return
	}
	config.ApplyPreset(&g.cfg, preset)
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.frame = time.Second / time.Duration(g.tickRate)
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.events = nil
	g.flash = ""
	g.flashTicks = 0

	g.clock = tetris.NewClockScheduler()
	opts := append(g.cfg.EngineOptions(),
		tetris.WithScheduler(g.clock),
		tetris.WithSeed(cfg.Seed),
		tetris.WithEventSink(g.onEvent),
	)
	if g.logger != nil {
		opts = append(opts, tetris.WithLogger(g.logger))
	}
	g.engine = tetris.New(g.cfg.Board.Width, g.cfg.Board.Height, opts...)
	g.engine.Start()
	g.events = nil

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.layout = computeLayout(g.cfg.Board.Width, g.cfg.Board.Height, width, height)
	g.tooSmall = !g.layout.fits
}

// SetLogger makes engines created by later Resets trace to l.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// BoardSize returns the playfield dimensions in cells.
func (g *Game) BoardSize() (width, height int) {
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// Engine exposes the underlying engine for hosts that need direct access.
func (g *Game) Engine() *tetris.Engine {
	return g.engine
}

func (g *Game) onEvent(ev tetris.Event) {
	g.events = append(g.events, ev.String())
	if c, ok := ev.(tetris.CompletedEvent); ok {
		g.flash = lineFlash(len(c.Lines))
		g.flashTicks = g.tickRate
	}
}

func lineFlash(n int) string {
	switch n {
	case 1:
		return "+1 LINE"
	case 2:
		return "+2 DOUBLE"
	case 3:
		return "+3 TRIPLE"
	default:
		return "+4 BLOCKFALL"
	}
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{}
	}
	g.tick++
	g.events = nil

	// Handle restart
	if input.Has(core.ActionRestart) && g.engine.State() == tetris.StateStopped {
		g.Reset(core.RuntimeConfig{
			Seed:     g.seeds.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		switch g.engine.State() {
		case tetris.StateRunning:
			g.engine.Pause()
		case tetris.StatePaused:
			g.engine.Resume()
		}
	}

	// A window that cannot show the board freezes the game.
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Actions {
		switch a {
		case core.ActionLeft:
			g.engine.MoveLeft()
		case core.ActionRight:
			g.engine.MoveRight()
		case core.ActionRotate:
			g.engine.Rotate()
		case core.ActionDrop:
			g.engine.Drop()
		}
	}

	if g.engine.State() == tetris.StateRunning {
		g.clock.Advance(g.frame)
		if g.flashTicks > 0 {
			g.flashTicks--
		}
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		Pieces:   g.engine.Pieces(),
		GameOver: g.engine.State() == tetris.StateStopped,
		Paused:   g.engine.State() == tetris.StatePaused,
	}
}
