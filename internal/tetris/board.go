package tetris

import (
	"errors"
	"fmt"
	"strings"
)

// BufferRows is the number of hidden rows above the visible playfield. They
// host spawning pieces and detect overflow.
const BufferRows = 5

// Minimum board dimensions. A smaller board cannot host every shape.
const (
	MinWidth  = 4
	MinHeight = 10
)

// ErrBoardTooSmall is returned by ValidateSize for undersized boards.
var ErrBoardTooSmall = errors.New("tetris: board too small")

// ValidateSize reports whether a width x height playfield can be constructed.
func ValidateSize(width, height int) error {
	if width < MinWidth || height < MinHeight {
		return fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrBoardTooSmall, width, height, MinWidth, MinHeight)
	}
	return nil
}

// CellKind tags the variant held by a Cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellFilled
	CellFalling
)

// Cell is a single board square. Shape is meaningful only for Filled and
// Falling cells.
type Cell struct {
	Kind  CellKind
	Shape Shape
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Kind: CellEmpty}
}

// Filled returns a locked cell left by shape s.
func Filled(s Shape) Cell {
	return Cell{Kind: CellFilled, Shape: s}
}

// Falling returns a cell occupied by the active block of shape s.
func Falling(s Shape) Cell {
	return Cell{Kind: CellFalling, Shape: s}
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns a one-rune rendering used by snapshots and debug output:
// '.' for empty, the shape letter for filled, and its lowercase for falling.
func (c Cell) String() string {
	switch c.Kind {
	case CellFilled:
		return c.Shape.String()
	case CellFalling:
		return strings.ToLower(c.Shape.String())
	default:
		return "."
	}
}

// Board is the playfield grid. Cells are stored row-major, bottom row first:
// index = y*Width + x. Rows at or above Height form the hidden buffer.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board with the given visible dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*(height+BufferRows)),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of visible rows.
func (b *Board) Height() int {
	return b.height
}

// Rows returns the total number of rows, buffer included.
func (b *Board) Rows() int {
	return b.height + BufferRows
}

// InBounds reports whether p addresses a cell of the board, buffer included.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.Rows()
}

func (b *Board) index(p Position) int {
	return p.Y*b.width + p.X
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty()
	}
}

// Cell returns the cell at p. Callers must check InBounds first.
func (b *Board) Cell(p Position) Cell {
	if !b.InBounds(p) {
		panic(fmt.Sprintf("tetris: cell %v outside %dx%d board", p, b.width, b.Rows()))
	}
	return b.cells[b.index(p)]
}

// Set stores c at p. Callers must check InBounds first.
func (b *Board) Set(c Cell, p Position) {
	if !b.InBounds(p) {
		panic(fmt.Sprintf("tetris: cell %v outside %dx%d board", p, b.width, b.Rows()))
	}
	b.cells[b.index(p)] = c
}

// FindCompletedLines returns the visible rows made entirely of Filled cells,
// in ascending order. Rows touched by the falling block never count.
func (b *Board) FindCompletedLines() []int {
	var lines []int
	for y := 0; y < b.height; y++ {
		if b.rowCompleted(y) {
			lines = append(lines, y)
		}
	}
	return lines
}

func (b *Board) rowCompleted(y int) bool {
	row := b.cells[y*b.width : (y+1)*b.width]
	for _, c := range row {
		if c.Kind != CellFilled {
			return false
		}
	}
	return true
}

// Remove deletes the given rows and compacts everything above them downward.
// Vacated rows at the top are emptied. Duplicate or out-of-range rows are
// ignored.
func (b *Board) Remove(lines []int) {
	if len(lines) == 0 {
		return
	}
	removed := make(map[int]bool, len(lines))
	for _, y := range lines {
		if y >= 0 && y < b.Rows() {
			removed[y] = true
		}
	}

	write := 0
	for read := 0; read < b.Rows(); read++ {
		if removed[read] {
			continue
		}
		if write != read {
			copy(b.cells[write*b.width:(write+1)*b.width], b.cells[read*b.width:(read+1)*b.width])
		}
		write++
	}
	for i := write * b.width; i < len(b.cells); i++ {
		b.cells[i] = Empty()
	}
}

// IsObstacle reports whether any cell in row y0 or above is non-empty.
func (b *Board) IsObstacle(y0 int) bool {
	if y0 < 0 {
		y0 = 0
	}
	for i := y0 * b.width; i < len(b.cells); i++ {
		if !b.cells[i].IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

// RowString renders row y using Cell.String.
func (b *Board) RowString(y int) string {
	var sb strings.Builder
	sb.Grow(b.width)
	for x := 0; x < b.width; x++ {
		sb.WriteString(b.cells[y*b.width+x].String())
	}
	return sb.String()
}

// String renders the whole board top row first, one row per line.
func (b *Board) String() string {
	rows := make([]string, 0, b.Rows())
	for y := b.Rows() - 1; y >= 0; y-- {
		rows = append(rows, b.RowString(y))
	}
	return strings.Join(rows, "\n")
}
