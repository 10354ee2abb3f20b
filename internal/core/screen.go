package core

import (
	"strings"
)

// Cell is a single screen position: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a fixed-size grid of cells that games draw into. The host turns
// it into terminal output; games never see the terminal.
type Screen struct {
	w, h  int
	cells []Cell // row-major, w*h
}

// NewScreen returns a blank w x h screen.
func NewScreen(w, h int) *Screen {
	s := &Screen{}
	s.Resize(w, h)
	return s
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.w }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.h }

// Bounds returns the whole screen as a rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.w, s.h)
}

// Resize changes the dimensions. The overlapping top-left area keeps its
// content; new cells are blank.
func (s *Screen) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if s.cells != nil && w == s.w && h == s.h {
		return
	}

	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = blank
	}
	for y := range min(h, s.h) {
		n := min(w, s.w)
		copy(cells[y*w:y*w+n], s.cells[y*s.w:y*s.w+n])
	}
	s.w, s.h, s.cells = w, h, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Set writes r in the default color. Writes outside the screen are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetColored writes r in color c.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	s.SetCell(x, y, Cell{Rune: r, Color: c})
}

// SetCell writes c. Writes outside the screen are dropped.
func (s *Screen) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// Get returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// DrawText writes text left to right from (x, y), one rune per column.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored is DrawText in color c.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text horizontally centered on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColored((s.w-len([]rune(text)))/2, y, text, c)
}

// DrawBox outlines r with single-line box characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	left, top := r.X, r.Y
	right, bottom := r.Right()-1, r.Bottom()-1

	for x := left + 1; x < right; x++ {
		s.SetColored(x, top, '─', c)
		s.SetColored(x, bottom, '─', c)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetColored(left, y, '│', c)
		s.SetColored(right, y, '│', c)
	}
	s.SetColored(left, top, '┌', c)
	s.SetColored(right, top, '┐', c)
	s.SetColored(left, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// Row returns row y as plain text. Rows outside the screen are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the whole screen as plain text, rows separated by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
