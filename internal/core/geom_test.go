package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)
	assert.Equal(t, 30, r.Right())
	assert.Equal(t, 25, r.Bottom())

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"last cell", 29, 24, true},
		{"right edge is exclusive", 30, 15, false},
		{"bottom edge is exclusive", 15, 25, false},
		{"left of", 9, 15, false},
		{"above", 15, 9, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Contains(tc.x, tc.y))
		})
	}
}

func TestRectInnerAndCentered(t *testing.T) {
	assert.Equal(t, NewRect(3, 4, 10, 20), NewRect(2, 3, 12, 22).Inner())
	assert.Equal(t, NewRect(1, 1, 0, 0), NewRect(0, 0, 1, 1).Inner(), "degenerate")

	tests := []struct {
		name string
		r    Rect
		w, h int
		want Rect
	}{
		{"fits", NewRect(0, 0, 80, 24), 20, 10, NewRect(30, 7, 20, 10)},
		{"offset parent", NewRect(4, 2, 10, 10), 4, 4, NewRect(7, 5, 4, 4)},
		{"too large", NewRect(0, 0, 10, 10), 30, 30, NewRect(0, 0, 30, 30)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.Centered(tc.w, tc.h))
		})
	}
}
