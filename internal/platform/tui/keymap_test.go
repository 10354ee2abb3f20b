package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate, false},
		{"w", runeKey("w"), core.ActionRotate, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionDrop, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDrop, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tc.msg)
			if got != tc.want {
				t.Errorf("MapKey(%q) action = %v, want %v", tc.msg.String(), got, tc.want)
			}
			if isQuit != tc.isQuit {
				t.Errorf("MapKey(%q) isQuit = %v, want %v", tc.msg.String(), isQuit, tc.isQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("a"), &frame) {
		t.Fatal("a reported as quit")
	}
	km.MapKeyToFrame(runeKey("z"), &frame)
	km.MapKeyToFrame(runeKey("w"), &frame)

	want := []core.Action{core.ActionLeft, core.ActionRotate}
	if len(frame.Actions) != len(want) {
		t.Fatalf("frame = %v, want %v", frame.Actions, want)
	}
	for i := range want {
		if frame.Actions[i] != want[i] {
			t.Errorf("frame[%d] = %v, want %v", i, frame.Actions[i], want[i])
		}
	}

	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q not reported as quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionPrev},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionNext},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	km := NewKeyMapper()
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}
