package tetris

// Block is a tetromino instance: shape, orientation and anchor, plus whether
// it is still falling. Collision queries read a Board but never mutate it;
// writing the block into the board is the Engine's job.
type Block struct {
	Shape       Shape
	Orientation Orientation
	Anchor      Position
	falling     bool
}

// NewBlock returns a block that is not yet placed on a board.
func NewBlock(s Shape, o Orientation) Block {
	return Block{Shape: s, Orientation: o}
}

// IsFalling reports whether the block is the active, unlocked piece.
func (bl Block) IsFalling() bool {
	return bl.falling
}

// Positions returns the block's absolute cell positions.
func (bl Block) Positions() [4]Position {
	return bl.positionsAt(bl.Anchor, bl.Orientation)
}

func (bl Block) positionsAt(anchor Position, o Orientation) [4]Position {
	var out [4]Position
	for i, off := range Offsets(bl.Shape, o) {
		out[i] = anchor.AddPos(off)
	}
	return out
}

// occupies reports whether p is one of the block's current cells.
func (bl Block) occupies(p Position) bool {
	for _, q := range bl.Positions() {
		if q == p {
			return true
		}
	}
	return false
}

// fits reports whether the block could sit at anchor with orientation o.
// Cells the block already occupies do not count as collisions.
func (bl Block) fits(b *Board, anchor Position, o Orientation) bool {
	for _, p := range bl.positionsAt(anchor, o) {
		if !b.InBounds(p) {
			return false
		}
		if bl.occupies(p) {
			continue
		}
		if !b.Cell(p).IsEmpty() {
			return false
		}
	}
	return true
}

// CanMoveLeft reports whether the block can shift one column left.
func (bl Block) CanMoveLeft(b *Board) bool {
	return bl.fits(b, bl.Anchor.Add(-1, 0), bl.Orientation)
}

// CanMoveRight reports whether the block can shift one column right.
func (bl Block) CanMoveRight(b *Board) bool {
	return bl.fits(b, bl.Anchor.Add(1, 0), bl.Orientation)
}

// CanFall reports whether the block can drop one row.
func (bl Block) CanFall(b *Board) bool {
	return bl.fits(b, bl.Anchor.Add(0, -1), bl.Orientation)
}

// MoveLeft shifts the anchor one column left. Check CanMoveLeft first.
func (bl *Block) MoveLeft() {
	bl.Anchor = bl.Anchor.Add(-1, 0)
}

// MoveRight shifts the anchor one column right. Check CanMoveRight first.
func (bl *Block) MoveRight() {
	bl.Anchor = bl.Anchor.Add(1, 0)
}

// Fall drops the anchor one row. Check CanFall first.
func (bl *Block) Fall() {
	bl.Anchor = bl.Anchor.Add(0, -1)
}

// Rotate turns the block one quarter clockwise if the result is in bounds and
// collision-free. No kick offsets are tried; on failure the orientation is
// left untouched and false is returned.
func (bl *Block) Rotate(b *Board) bool {
	next := bl.Orientation.Next()
	if !bl.fits(b, bl.Anchor, next) {
		return false
	}
	bl.Orientation = next
	return true
}

// MakeObstacle marks the block as locked.
func (bl *Block) MakeObstacle() {
	bl.falling = false
}

// Placed returns a falling copy of the block anchored so that its horizontal
// extent is centered on the board and its lowest cell sits on row above.
// When centering leaves an odd spare column the block leans toward the side
// where it extends less from its anchor; ties lean left.
func (bl Block) Placed(above int, b *Board) Block {
	offs := Offsets(bl.Shape, bl.Orientation)
	minX, maxX, minY := offs[0].X, offs[0].X, offs[0].Y
	for _, p := range offs[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
	}

	extent := maxX - minX + 1
	spare := b.Width() - extent
	left := spare / 2
	if spare%2 != 0 && maxX < -minX {
		left++
	}

	placed := bl
	placed.Anchor = Position{X: left - minX, Y: above - minY}
	placed.falling = true
	return placed
}
