package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuItemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuHint = "↑/↓ board  ←/→ difficulty  enter play  tab scores  q quit"

// MenuItem is one variant in the picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // 0 if nothing recorded
}

// MenuModel lets the player pick a variant and a difficulty preset.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	preset     int // index into config.Presets
	cfg        core.RuntimeConfig
	keys       *KeyMapper
	chosen     *MenuItem
	scoreboard bool
	quitting   bool
}

// NewMenuModel lists the registered variants with their best scores. The
// difficulty cursor starts on preset.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	m := MenuModel{cfg: cfg, keys: NewKeyMapper()}

	for _, g := range registry.List() {
		it := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			it.Best, _ = store.HighScore(g.ID)
		}
		m.items = append(m.items, it)
	}
	for i, p := range config.Presets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cfg.ScreenW, m.cfg.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		n := len(config.Presets)
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionPrev:
			m.preset = (m.preset + n - 1) % n
		case MenuActionNext:
			m.preset = (m.preset + 1) % n
		case MenuActionScoreboard:
			m.scoreboard = true
			return m, tea.Quit
		case MenuActionSelect:
			if len(m.items) > 0 {
				it := m.items[m.cursor]
				m.chosen = &it
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	for i, it := range m.items {
		line := it.Title
		if it.Best > 0 {
			line += menuBestStyle.Render(fmt.Sprintf("  best %d", it.Best))
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		list.WriteString(menuItemStyle.Render(line))
		list.WriteString("\n")
	}

	difficulty := fmt.Sprintf("Difficulty  ◀ %s ▶", m.Difficulty())
	if config.IsFixedPreset(m.Difficulty()) {
		difficulty += menuHintStyle.Render("  fixed speed")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		menuTitleStyle.Render("B L O C K F A L L"),
		"",
		list.String(),
		difficulty,
		"",
		menuHintStyle.Render(menuHint),
	)
	return "\n" + lipgloss.PlaceHorizontal(m.cfg.ScreenW, lipgloss.Center, body)
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.chosen
}

// Difficulty returns the preset under the difficulty cursor.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// IsQuitting reports whether the player left the menu without choosing.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the runtime config updated with the latest window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.cfg
}

// MenuResult is what the menu program decided.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the final menu state. A menu closed without a choice
// counts as quitting.
func (m MenuModel) Result() MenuResult {
	r := MenuResult{Config: m.cfg, Difficulty: m.Difficulty()}
	switch {
	case m.scoreboard:
		r.WantsScoreboard = true
	case m.chosen != nil && !m.quitting:
		r.GameID = m.chosen.GameID
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the menu full screen and returns the player's choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, preset), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg, Difficulty: preset}, err
	}
	if m, ok := final.(MenuModel); ok {
		return m.Result(), nil
	}
	return MenuResult{Config: cfg, Difficulty: preset, Quit: true}, nil
}
