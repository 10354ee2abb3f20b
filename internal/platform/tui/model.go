package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// boardSizer is implemented by games that report their playfield size.
type boardSizer interface {
	BoardSize() (width, height int)
}

// Model plays one game: keys collected between frames are handed to the
// game as a single InputFrame on the next TickMsg.
type Model struct {
	game    registry.Game
	cfg     core.RuntimeConfig
	screen  *core.Screen
	keys    *KeyMapper
	painter *Painter
	logger  *log.Logger
	store   *storage.Store
	player  string

	input core.InputFrame
	state core.GameState

	menuReturn bool // B/Esc may leave a paused or finished game
	backToMenu bool
	quitting   bool
	recorded   bool // the current game over is already in the store
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer sets the name recorded with saved scores.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithPainter sets the painter used by View.
func WithPainter(p *Painter) ModelOption {
	return func(m *Model) { m.painter = p }
}

// WithLogger sets the logger for score and screenshot reports.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithMenuReturn lets B/Esc leave a paused or finished game for the menu.
func WithMenuReturn() ModelOption {
	return func(m *Model) { m.menuReturn = true }
}

// NewModel resets game for cfg and wraps it. A zero seed is replaced by the
// current time.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:    game,
		cfg:     cfg,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    NewKeyMapper(),
		painter: defaultPainter,
		logger:  log.Default(),
		store:   store,
		player:  os.Getenv("USER"),
		input:   core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	game.Reset(m.cfg)
	m.state = game.State()
	return m
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.frame()
	case tea.KeyMsg:
		return m.key(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	switch {
	case quit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && m.menuReturn && (m.state.GameOver || m.state.Paused):
		m.backToMenu = true
	default:
		m.input.Set(action)
	}
	return m, nil
}

// resize relayouts games that support it. Others restart unless they are
// showing a final score.
func (m *Model) resize(w, h int) {
	m.cfg.ScreenW, m.cfg.ScreenH = w, h
	m.screen.Resize(w, h)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(w, h)
		return
	}
	if !m.state.GameOver {
		m.game.Reset(m.cfg)
	}
}

func (m Model) frame() (tea.Model, tea.Cmd) {
	m.state = m.game.Step(m.input).State
	m.input.Clear()

	switch {
	case !m.state.GameOver:
		m.recorded = false
	case !m.recorded:
		m.saveScore()
		m.recorded = true
	}
	return m, tickCmd(m.cfg.TickRate)
}

// saveScore records the finished game. Games that scored nothing are not
// recorded.
func (m *Model) saveScore() {
	if m.store == nil || m.state.Score == 0 {
		return
	}

	e := storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.state.Score,
		Lines:  m.state.Lines,
		Pieces: m.state.Pieces,
	}
	if bs, ok := m.game.(boardSizer); ok {
		e.Width, e.Height = bs.BoardSize()
	}

	if _, err := m.store.SaveScore(e); err != nil {
		m.logger.Error("save score", "game", e.GameID, "err", err)
		return
	}
	m.logger.Debug("score saved", "game", e.GameID, "player", e.Player, "score", e.Score)
}

// saveScreenshot writes the current frame as plain text to
// ~/.blockfall/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Error("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("screenshot", "err", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// State returns the game state as of the last frame.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return m.painter.Render(m.screen)
}

// Run plays game full screen until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg, opts...), tea.WithAltScreen()).Run()
	return err
}
