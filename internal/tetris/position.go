package tetris

import "fmt"

// Position is a board coordinate. X increases to the right, Y increases
// upward; row 0 is the bottom visible row.
type Position struct {
	X int
	Y int
}

// Pos is a convenience constructor for Position.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// AddPos returns the sum of two positions.
func (p Position) AddPos(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
