package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Painter converts screen buffers into styled strings for one output.
// SSH sessions get their own painter so color support is detected per client.
type Painter struct {
	styles map[core.Color]lipgloss.Style
}

// NewPainter builds a painter bound to the given renderer.
// A nil renderer uses lipgloss' default (local terminal) renderer.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Painter{styles: make(map[core.Color]lipgloss.Style)}
	p.styles[core.ColorDefault] = r.NewStyle()
	for c := core.ColorRed; c <= core.ColorGray; c++ {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
	}
	return p
}

func (p *Painter) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.styles[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPainter = NewPainter(nil)

// RenderScreen renders s with the local terminal's painter.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}
