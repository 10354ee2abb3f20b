// Package tetris implements the simulation core of the falling-block game:
// board state, active-piece geometry, gravity timing, collision, line
// clearing, scoring and next-piece selection.
//
// The package is UI-agnostic. Hosts feed it ticks (directly or through a
// Scheduler) and input commands, and observe it through emitted events and
// read-only queries.
package tetris

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeO Shape = iota
	ShapeI
	ShapeS
	ShapeZ
	ShapeL
	ShapeJ
	ShapeT
)

// ShapeCount is the size of the shape catalog.
const ShapeCount = 7

// Shapes lists every shape in catalog order.
var Shapes = [ShapeCount]Shape{ShapeO, ShapeI, ShapeS, ShapeZ, ShapeL, ShapeJ, ShapeT}

// baseOffsets holds each shape's cells in the north orientation, relative to
// the shape's local origin. Y grows upward.
var baseOffsets = [ShapeCount][4]Position{
	ShapeO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	ShapeI: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	ShapeS: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	ShapeZ: {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
	ShapeL: {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
	ShapeJ: {{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
	ShapeT: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
}

// BaseOffsets returns the four north-orientation offsets of s.
func BaseOffsets(s Shape) [4]Position {
	return baseOffsets[s]
}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeO:
		return "O"
	case ShapeI:
		return "I"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeT:
		return "T"
	default:
		return "?"
	}
}

// Orientation is a quarter-turn rotation applied to a shape's base offsets.
type Orientation uint8

const (
	North Orientation = iota
	East
	South
	West
)

// Orientations lists every orientation in clockwise order.
var Orientations = [4]Orientation{North, East, South, West}

// Next returns the orientation one clockwise quarter-turn after o.
func (o Orientation) Next() Orientation {
	return (o + 1) % 4
}

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Rotate applies orientation o to a relative offset. Rotation is around the
// shape's local origin, not a recentered bounding box.
func Rotate(p Position, o Orientation) Position {
	switch o {
	case South:
		return Position{X: -p.X, Y: -p.Y}
	case West:
		return Position{X: -p.Y, Y: p.X}
	case East:
		return Position{X: p.Y, Y: -p.X}
	default:
		return p
	}
}

// Offsets returns the four offsets of s rotated into orientation o.
func Offsets(s Shape, o Orientation) [4]Position {
	var out [4]Position
	for i, p := range baseOffsets[s] {
		out[i] = Rotate(p, o)
	}
	return out
}
