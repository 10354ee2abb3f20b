// Package core holds the types shared by games and hosts: the screen
// buffer, colors, input frames and runtime settings. It imports no UI
// package so game logic stays testable without a terminal.
package core

// Rect is an axis-aligned screen area. X and Y are the top-left cell.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the w x h rectangle at (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inner returns the area inside a one-cell border.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: max(r.W-2, 0), H: max(r.H-2, 0)}
}

// Centered returns a w x h rectangle centered in r. When it does not fit
// it is anchored at r's top-left corner instead.
func (r Rect) Centered(w, h int) Rect {
	return Rect{
		X: r.X + max((r.W-w)/2, 0),
		Y: r.Y + max((r.H-h)/2, 0),
		W: w,
		H: h,
	}
}
