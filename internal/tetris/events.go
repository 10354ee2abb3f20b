package tetris

import (
	"fmt"
	"strings"
)

// Event is emitted by the Engine for every observable state change.
type Event interface {
	event()
	String() string
}

// EventSink receives Engine events synchronously, in emission order.
type EventSink func(Event)

// StartGameEvent is emitted once per Start.
type StartGameEvent struct{}

func (StartGameEvent) event() {}

func (StartGameEvent) String() string { return "startGame" }

// NewPieceEvent is emitted when a block becomes the active piece.
type NewPieceEvent struct {
	Shape Shape
	Next  Shape
}

func (NewPieceEvent) event() {}

func (NewPieceEvent) String() string { return "newPiece" }

// FallEvent is emitted when gravity moves the active block down a row.
type FallEvent struct{}

func (FallEvent) event() {}

func (FallEvent) String() string { return "fall" }

// DropEvent is emitted by every Drop, with the number of rows covered.
type DropEvent struct {
	By int
}

func (DropEvent) event() {}

func (e DropEvent) String() string { return fmt.Sprintf("drop(by: %d)", e.By) }

// MoveLeftEvent is emitted when the active block shifts left.
type MoveLeftEvent struct{}

func (MoveLeftEvent) event() {}

func (MoveLeftEvent) String() string { return "moveLeft" }

// MoveRightEvent is emitted when the active block shifts right.
type MoveRightEvent struct{}

func (MoveRightEvent) event() {}

func (MoveRightEvent) String() string { return "moveRight" }

// RotateEvent is emitted when the active block turns. By is in degrees.
type RotateEvent struct {
	By int
}

func (RotateEvent) event() {}

func (e RotateEvent) String() string { return fmt.Sprintf("rotate(by: %d)", e.By) }

// CompletedEvent is emitted after completed rows are removed. Lines holds the
// removed row indices in ascending order, as they were before removal.
type CompletedEvent struct {
	Lines []int
}

func (CompletedEvent) event() {}

func (e CompletedEvent) String() string {
	parts := make([]string, len(e.Lines))
	for i, y := range e.Lines {
		parts[i] = fmt.Sprintf("%d", y)
	}
	return fmt.Sprintf("completed(lines: {%s})", strings.Join(parts, ", "))
}

// GameOverEvent is emitted when a lock leaves material in the buffer rows.
type GameOverEvent struct{}

func (GameOverEvent) event() {}

func (GameOverEvent) String() string { return "gameOver" }
