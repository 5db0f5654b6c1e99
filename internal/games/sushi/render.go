package sushi

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/sushi-tower/internal/core"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

const (
	hudHeight   = 3
	pieceWidth  = 7 // "(@@@@@)"
	stickLength = 5
	healthWidth = 20
	charGap     = 2 // Columns between chopstick tips and the character
	charWidth   = 3
)

// Glyphs
const (
	pieceBody   = "(@@@@@)"
	stickGlyph  = '='
	groundGlyph = '▀'
)

// layout holds screen positions computed for a frame.
type layout struct {
	w, h    int
	centerX int
	towerX  int // Left column of the piece body
	groundY int // Row of the front piece
}

func (g *Game) layout(dst *platformcore.Screen) layout {
	w, h := dst.Width(), dst.Height()
	return layout{
		w:       w,
		h:       h,
		centerX: w / 2,
		towerX:  w/2 - pieceWidth/2,
		groundY: h - 3,
	}
}

// characterX returns the left column of the character standing on side.
func (l layout) characterX(side core.Side) int {
	if side == core.SideRight {
		return l.towerX + pieceWidth + stickLength + charGap
	}
	return l.towerX - stickLength - charGap - charWidth
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout(dst)

	g.renderHUD(dst, l)
	g.renderTower(dst, l)
	g.renderFlips(dst, l)
	g.renderCharacter(dst, l)
	dst.DrawHLine(0, l.groundY+1, l.w, groundGlyph)

	if g.anim.Dead() {
		// Tower and character turn red
		dst.Tint(platformcore.NewRect(0, hudHeight, l.w, l.groundY-hudHeight+1), platformcore.ColorRed)
	}

	g.renderOverlays(dst, l)
	dst.DrawTextCenteredColored(l.h-1, g.Controls(), platformcore.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and health bar.
func (g *Game) renderHUD(dst *platformcore.Screen, l layout) {
	dst.DrawTextCenteredColored(0, strings.ToUpper(g.Title()), platformcore.ColorBrightWhite)

	scoreStr := fmt.Sprintf("Score: %d", g.machine.Score())
	dst.DrawTextCenteredColored(1, scoreStr, platformcore.ColorYellow)

	health := g.machine.DisplayHealth()
	x := l.centerX - (healthWidth+2)/2
	dst.DrawText(x, 2, HealthBar(health, healthWidth))
	dst.Tint(platformcore.NewRect(x+1, 2, filledCells(health, healthWidth), 1), healthColor(health))
}

// HealthBar formats health in [0, 1] as a bracketed bar of width cells.
func HealthBar(health float64, width int) string {
	filled := filledCells(health, width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

func filledCells(health float64, width int) int {
	health = platformcore.ClampF(health, 0, 1)
	return int(health*float64(width) + 0.5)
}

func healthColor(health float64) platformcore.Color {
	switch {
	case health > 0.5:
		return platformcore.ColorGreen
	case health > 0.25:
		return platformcore.ColorYellow
	default:
		return platformcore.ColorBrightRed
	}
}

// renderTower draws the stacked pieces from the front piece upward.
func (g *Game) renderTower(dst *platformcore.Screen, l layout) {
	step := g.cfg.Presentation.DropStepHeight
	shift := g.anim.DropShift()

	for i, p := range g.machine.Tower().Pieces() {
		y := l.groundY - core.Offset(i, step) - shift
		if y < hudHeight {
			break
		}
		drawPiece(dst, l.towerX, y, p)
	}
}

// drawPiece draws a piece body with its chopsticks at (x, y).
func drawPiece(dst *platformcore.Screen, x, y int, p core.Piece) {
	dst.DrawTextColored(x, y, pieceBody, platformcore.ColorOrange)
	dst.SetColored(x+pieceWidth/2, y, '◉', platformcore.ColorPink)

	switch p.Side {
	case core.SideLeft:
		for i := 1; i <= stickLength; i++ {
			dst.SetColored(x-i, y, stickGlyph, platformcore.ColorBrown)
		}
	case core.SideRight:
		for i := 0; i < stickLength; i++ {
			dst.SetColored(x+pieceWidth+i, y, stickGlyph, platformcore.ColorBrown)
		}
	}
}

// renderFlips draws knocked-off pieces flying out of the tower.
func (g *Game) renderFlips(dst *platformcore.Screen, l layout) {
	for _, f := range g.anim.Flips() {
		dx, dy := f.FlipOffset(l.w / 2)
		y := l.groundY + dy
		if y < hudHeight {
			continue
		}
		drawPiece(dst, l.towerX+dx, y, f.Piece)
	}
}

// renderCharacter draws the character next to the front piece, punching
// toward the tower right after a tap.
func (g *Game) renderCharacter(dst *platformcore.Screen, l layout) {
	side := g.machine.CharacterSide()
	x := l.characterX(side)
	color := platformcore.ColorBrightWhite

	dst.DrawTextColored(x, l.groundY-1, " o ", color)
	body := "/|\\"
	if g.anim.Punching() {
		if side == core.SideLeft {
			body = "/|═"
			dst.SetColored(x+charWidth, l.groundY, '>', color)
		} else {
			body = "═|\\"
			dst.SetColored(x-1, l.groundY, '<', color)
		}
	}
	dst.DrawTextColored(x, l.groundY, body, color)
}

// renderOverlays draws phase overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, l layout) {
	centerY := hudHeight + (l.groundY-hudHeight)/2

	if g.paused {
		g.drawOverlay(dst, l.centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	switch g.machine.Phase() {
	case core.PhaseTitle:
		g.drawOverlay(dst, l.centerX, centerY, strings.ToUpper(g.Title()), "Chop from the side without chopsticks", "Press Enter to start")
	case core.PhaseReady:
		dst.DrawTextCenteredColored(hudHeight, "Tap ← or → to chop", platformcore.ColorYellow)
	case core.PhaseGameOver:
		reason := "Hit by chopsticks"
		if g.reason == core.ReasonStarved {
			reason = "Ran out of time"
		}
		scoreStr := fmt.Sprintf("Score: %d", g.machine.Score())
		g.drawOverlay(dst, l.centerX, centerY, "GAME OVER", reason, scoreStr, "Press Enter or R to retry")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}

	// Draw box
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	// Draw text
	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColored(x, box.Y+1+i, line, platformcore.ColorBrightWhite)
	}
}
