// Package tui provides the Bubble Tea integration for the sushi tower host.
// It handles the terminal UI loop, input mapping, run archiving and the SSH
// server.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sushi-tower/internal/core"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg. Non-positive rates fall back to 60.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// palette maps screen colors to terminal styles.
var palette = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorPink:        lipgloss.NewStyle().Foreground(lipgloss.Color("211")),
	core.ColorBrown:       lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := palette[c]; ok {
		return style
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns a screen buffer into styled terminal text, one line per
// row. Cells sharing a color are rendered as a single styled span.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	var span []rune

	for y := range lines {
		var line strings.Builder
		color := s.GetCell(0, y).Color
		span = span[:0]

		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				line.WriteString(styleFor(color).Render(string(span)))
				color = cell.Color
				span = span[:0]
			}
			span = append(span, cell.Rune)
		}
		line.WriteString(styleFor(color).Render(string(span)))
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
