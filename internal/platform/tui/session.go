package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// GameFactory builds the game a session picked from the menu.
type GameFactory func(id string, preset config.DifficultyPreset) (registry.Game, error)

// difficultySetter is implemented by games whose fall speed follows a
// difficulty preset.
type difficultySetter interface {
	SetDifficulty(preset config.DifficultyPreset)
}

// registryFactory creates games from the registry and hands the preset to
// those that take one.
func registryFactory(id string, preset config.DifficultyPreset) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if ds, ok := game.(difficultySetter); ok {
		ds.SetDifficulty(preset)
	}
	return game, nil
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store      *storage.Store
	Config     core.RuntimeConfig
	Player     string
	Difficulty config.DifficultyPreset
	NewGame    GameFactory
	Painter    *Painter
	Logger     *log.Logger
}

// SessionModel runs menu and games inside a single program, switching
// between them until the player quits. SSH connections use it because they
// cannot start a new program per screen.
type SessionModel struct {
	opts SessionOptions
	menu MenuModel
	game *Model // nil while the menu is shown
	done bool
}

// NewSessionModel opens a session on the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.NewGame == nil {
		opts.NewGame = registryFactory
	}
	if opts.Painter == nil {
		opts.Painter = defaultPainter
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := SessionModel{opts: opts}
	s.openMenu()
	return s
}

func (s *SessionModel) openMenu() {
	s.game = nil
	s.menu = NewMenuModel(s.opts.Store, s.opts.Config, s.opts.Difficulty)
}

// Init implements tea.Model.
func (s SessionModel) Init() tea.Cmd {
	return s.menu.Init()
}

// InGame reports whether a game is running.
func (s SessionModel) InGame() bool {
	return s.game != nil
}

// Update implements tea.Model. Window sizes are remembered so the next
// screen opens at the current size.
func (s SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		s.opts.Config.ScreenW, s.opts.Config.ScreenH = ws.Width, ws.Height
	}
	if s.game != nil {
		return s.updateGame(msg)
	}
	return s.updateMenu(msg)
}

func (s SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.menu.Update(msg)
	s.menu = next.(MenuModel)
	s.opts.Difficulty = s.menu.Difficulty()

	switch {
	case s.menu.WantsScoreboard():
		// The scoreboard is a separate program locally; here the menu's
		// best scores stand in for it.
		s.openMenu()
		return s, nil
	case s.menu.IsQuitting():
		s.done = true
		return s, tea.Quit
	case s.menu.Selected() == nil:
		return s, cmd
	}

	id := s.menu.Selected().GameID
	game, err := s.opts.NewGame(id, s.opts.Difficulty)
	if err != nil {
		s.opts.Logger.Error("create game", "game", id, "err", err)
		s.openMenu()
		return s, nil
	}
	s.opts.Logger.Info("game started", "game", id, "difficulty", s.opts.Difficulty)

	cfg := s.opts.Config
	cfg.Seed = time.Now().UnixNano()
	gm := NewModel(game, s.opts.Store, cfg,
		WithPlayer(s.opts.Player),
		WithPainter(s.opts.Painter),
		WithLogger(s.opts.Logger),
		WithMenuReturn(),
	)
	s.game = &gm
	return s, gm.Init()
}

func (s SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.game.Update(msg)
	gm := next.(Model)
	s.game = &gm

	switch {
	case gm.BackToMenu():
		s.openMenu()
		return s, s.menu.Init()
	case gm.IsQuitting():
		s.done = true
		return s, tea.Quit
	}
	return s, cmd
}

// View implements tea.Model.
func (s SessionModel) View() string {
	switch {
	case s.done:
		return ""
	case s.game != nil:
		return s.game.View()
	default:
		return s.menu.View()
	}
}
