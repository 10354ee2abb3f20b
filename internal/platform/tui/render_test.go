package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestPainterPlainOutput(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(0, 0, "Score: 7", core.ColorYellow)
	s.SetColored(2, 1, '█', core.ColorCyan)
	s.SetColored(3, 1, '█', core.ColorCyan)
	s.DrawText(0, 2, "ok")

	// A renderer on a non-terminal writer has no color support.
	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	out := p.Render(s)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() has %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Score: 7") {
		t.Errorf("line 0 = %q, want prefix %q", lines[0], "Score: 7")
	}
	if !strings.Contains(lines[1], "██") {
		t.Errorf("line 1 = %q, want block cells", lines[1])
	}
	if !strings.HasPrefix(lines[2], "ok") {
		t.Errorf("line 2 = %q, want prefix %q", lines[2], "ok")
	}
}

func TestPainterUnknownColorFallsBack(t *testing.T) {
	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	if got := p.style(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("style(200).Render(x) = %q, want %q", got, "x")
	}
}
