package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/sushi-tower/internal/core"
)

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(1, 0, "(@@@@@)", core.ColorOrange)
	s.SetColored(4, 0, '◉', core.ColorPink)
	s.DrawTextColored(0, 2, "Score: 7", core.ColorYellow)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for _, want := range []string{"(@@", "◉", "@@)", "Score: 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTickCmdDefaultsRate(t *testing.T) {
	if tickCmd(0) == nil || tickCmd(30) == nil {
		t.Error("tickCmd should always return a command")
	}
}
