package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Arrows, WASD and vi keys all work; space and down drop the block.
var defaultGameKeys = map[core.Action][]string{
	core.ActionLeft:    {"left", "a", "h"},
	core.ActionRight:   {"right", "d", "l"},
	core.ActionRotate:  {"up", "w", "k"},
	core.ActionDrop:    {" ", "down", "s", "j"},
	core.ActionConfirm: {"enter"},
	core.ActionBack:    {"esc", "b"},
	core.ActionPause:   {"p"},
	core.ActionRestart: {"r"},
	core.ActionQuit:    {"q", "ctrl+c"},
}

// MenuAction is a navigation intent in the menus.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionPrev
	MenuActionNext
)

var defaultMenuKeys = map[MenuAction][]string{
	MenuActionUp:         {"up", "w", "k"},
	MenuActionDown:       {"down", "s", "j"},
	MenuActionPrev:       {"left", "a", "h"},
	MenuActionNext:       {"right", "d", "l"},
	MenuActionSelect:     {"enter", " "},
	MenuActionBack:       {"esc", "b"},
	MenuActionScoreboard: {"tab"},
	MenuActionQuit:       {"q", "ctrl+c"},
}

// KeyMapper resolves key messages to game and menu actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{
		game: make(map[string]core.Action),
		menu: make(map[string]MenuAction),
	}
	for a, keys := range defaultGameKeys {
		for _, k := range keys {
			km.game[k] = a
		}
	}
	for a, keys := range defaultMenuKeys {
		for _, k := range keys {
			km.menu[k] = a
		}
	}
	return km
}

// MapKey returns the game action bound to msg (ActionNone if unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	a := km.game[msg.String()]
	return a, a == core.ActionQuit
}

// MapKeyToFrame records the action bound to msg in frame and reports
// whether it asks to quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	a, quit := km.MapKey(msg)
	frame.Set(a)
	return quit
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return km.menu[msg.String()]
}
