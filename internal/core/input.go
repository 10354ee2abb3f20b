package core

import "slices"

// Action is a player intent. Hosts map their keys to actions; games only
// ever see actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - shift the falling block left
	ActionRight          // D, Right arrow - shift the falling block right
	ActionRotate         // W, Up arrow - rotate clockwise
	ActionDrop           // Space, Down arrow - hard drop
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionRotate:  "Rotate",
	ActionDrop:    "Drop",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions typed during one frame, in arrival order,
// so a left-then-rotate typed within one frame is applied as typed.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has reports whether a was typed this frame.
func (f InputFrame) Has(a Action) bool {
	return slices.Contains(f.Actions, a)
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = nil
}

// Clone returns a frame that does not share storage with f.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: slices.Clone(f.Actions)}
}
