package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

const (
	hudHeight  = 2
	panelWidth = 16
	panelGap   = 2
	previewW   = 4 // cells
	previewH   = 4
)

// layout positions the board and side panel on screen.
type layout struct {
	fits  bool
	reqW  int
	reqH  int
	board core.Rect // bordered, two columns per cell
	panel core.Rect
}

func computeLayout(boardW, boardH, screenW, screenH int) layout {
	box := core.NewRect(0, hudHeight, 2*boardW+2, boardH+2)
	totalW := box.W + panelGap + panelWidth
	l := layout{
		reqW: totalW,
		reqH: hudHeight + box.H,
	}
	l.fits = screenW >= l.reqW && screenH >= l.reqH

	box.X = max((screenW-totalW)/2, 0)
	l.board = box
	l.panel = core.NewRect(box.Right()+panelGap, hudHeight, panelWidth, box.H)
	return l
}

// ShapeColor returns the color a shape is drawn in. Falling cells use the
// bright variant; L stays orange either way.
func ShapeColor(s tetris.Shape, falling bool) core.Color {
	c := shapeColors[s]
	if falling {
		return c.Bright()
	}
	return c
}

var shapeColors = map[tetris.Shape]core.Color{
	tetris.ShapeO: core.ColorYellow,
	tetris.ShapeI: core.ColorCyan,
	tetris.ShapeS: core.ColorGreen,
	tetris.ShapeZ: core.ColorRed,
	tetris.ShapeL: core.ColorOrange,
	tetris.ShapeJ: core.ColorBlue,
	tetris.ShapeT: core.ColorMagenta,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.layout.reqW, g.layout.reqH))
		return
	}

	g.renderBoard(dst)
	g.renderPanel(dst)

	switch g.engine.State() {
	case tetris.StateStopped:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.engine.Score()))
	case tetris.StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Lines: %d", g.title, g.engine.Score(), g.engine.Lines())
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderBoard draws the visible rows, the ghost of the falling block and the
// board frame.
func (g *Game) renderBoard(dst *core.Screen) {
	box := g.layout.board
	dst.DrawBox(box, core.ColorGray)

	w, h := g.engine.Width(), g.engine.Height()
	toScreen := func(x, y int) (int, int) {
		return box.X + 1 + 2*x, box.Y + 1 + (h - 1 - y)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := toScreen(x, y)
			c := g.engine.CellAt(x, y)
			switch c.Kind {
			case tetris.CellFilled, tetris.CellFalling:
				color := ShapeColor(c.Shape, c.Kind == tetris.CellFalling)
				dst.SetColored(sx, sy, '█', color)
				dst.SetColored(sx+1, sy, '█', color)
			default:
				dst.SetColored(sx+1, sy, '·', core.ColorGray)
			}
		}
	}

	for _, p := range g.ghost() {
		if p.Y >= h || !g.engine.CellAt(p.X, p.Y).IsEmpty() {
			continue
		}
		sx, sy := toScreen(p.X, p.Y)
		dst.SetColored(sx, sy, '░', core.ColorGray)
		dst.SetColored(sx+1, sy, '░', core.ColorGray)
	}
}

// ghost returns where the falling block would land if dropped now.
func (g *Game) ghost() []tetris.Position {
	cur, ok := g.engine.Current()
	if !ok || !cur.IsFalling() {
		return nil
	}
	b := g.engine.Board()
	for _, p := range cur.Positions() {
		b.Set(tetris.Empty(), p)
	}
	for cur.CanFall(b) {
		cur.Fall()
	}
	positions := cur.Positions()
	return positions[:]
}

// renderPanel draws the next-piece preview and statistics.
func (g *Game) renderPanel(dst *core.Screen) {
	p := g.layout.panel
	preview := core.NewRect(p.X, p.Y, 2*previewW+2, previewH+2)
	dst.DrawBox(preview, core.ColorGray)
	dst.DrawText(preview.X+2, preview.Y, "NEXT")
	if s, o, ok := g.engine.Next(); ok {
		drawPreview(dst, preview.Inner(), s, o)
	}

	y := preview.Bottom() + 1
	lines := []string{
		fmt.Sprintf("SCORE  %d", g.engine.Score()),
		fmt.Sprintf("LINES  %d", g.engine.Lines()),
		fmt.Sprintf("PIECES %d", g.engine.Pieces()),
		fmt.Sprintf("SPEED  %dms", g.engine.Interval().Milliseconds()),
	}
	for i, line := range lines {
		dst.DrawText(p.X, y+i, line)
	}
	y += len(lines)

	if g.flashTicks > 0 {
		dst.DrawTextColored(p.X, y, g.flash, core.ColorBrightYellow)
	}
	y += 2

	stats := g.engine.Stats()
	for i, s := range tetris.Shapes {
		dst.DrawTextColored(p.X, y+i, fmt.Sprintf("%s %3d", s, stats[s]), ShapeColor(s, false))
	}
}

// drawPreview draws shape s in orientation o centered inside area.
func drawPreview(dst *core.Screen, area core.Rect, s tetris.Shape, o tetris.Orientation) {
	offsets := tetris.Offsets(s, o)
	minX, maxX, minY, maxY := offsets[0].X, offsets[0].X, offsets[0].Y, offsets[0].Y
	for _, p := range offsets {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	cellsW := maxX - minX + 1
	cellsH := maxY - minY + 1
	originX := area.X + (area.W-2*cellsW)/2
	originY := area.Y + (area.H-cellsH)/2

	color := ShapeColor(s, false)
	for _, p := range offsets {
		sx := originX + 2*(p.X-minX)
		sy := originY + (maxY - p.Y)
		dst.SetColored(sx, sy, '█', color)
		dst.SetColored(sx+1, sy, '█', color)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(width, 5)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
