package tetris

// Snapshot captures the complete engine state for determinism testing and
// replay tooling.
type Snapshot struct {
	State       State
	Score       int
	Lines       int
	Pieces      int
	Interval    int64 // milliseconds
	Shape       Shape
	Orientation Orientation
	Anchor      Position
	Falling     bool
	Next        Shape
	Recent      []Shape
	Rows        []string // top row first, buffer included
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	rows := make([]string, 0, e.board.Rows())
	for y := e.board.Rows() - 1; y >= 0; y-- {
		rows = append(rows, e.board.RowString(y))
	}
	return Snapshot{
		State:       e.state,
		Score:       e.score,
		Lines:       e.lines,
		Pieces:      e.pieces,
		Interval:    e.interval.Milliseconds(),
		Shape:       e.current.Shape,
		Orientation: e.current.Orientation,
		Anchor:      e.current.Anchor,
		Falling:     e.current.IsFalling(),
		Next:        e.next.Shape,
		Recent:      e.generator.Recent(),
		Rows:        rows,
	}
}
