package sushi

import (
	"github.com/vovakirdan/sushi-tower/internal/config"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

// Flip is a knocked-off piece flying out of the tower.
type Flip struct {
	Piece    core.Piece
	Exit     core.Side
	Progress float64 // 0.0 → 1.0
	ticks    int
}

// Animator turns core events into glyph animations. It only reads events
// and never drives the machine.
type Animator struct {
	cfg config.PresentationConfig

	flips      []Flip
	punchTicks int // Remaining ticks of the punch pose
	dropTicks  int // Remaining ticks of the tower settling
	dead       bool
}

// NewAnimator creates an animator with the given timings.
func NewAnimator(cfg config.PresentationConfig) *Animator {
	return &Animator{cfg: cfg}
}

// OnEvent implements core.Listener.
func (a *Animator) OnEvent(e core.Event) {
	switch ev := e.(type) {
	case core.CharacterSideChanged:
		a.punchTicks = a.cfg.PunchTicks
	case core.PieceResolved:
		if a.cfg.FlipTicks > 0 {
			a.flips = append(a.flips, Flip{
				Piece: core.Piece{ID: ev.PieceID, Side: ev.Side},
				Exit:  ev.Exit,
			})
		}
		a.dropTicks = a.cfg.DropTicks
	case core.GameOverEntered:
		a.dead = true
		a.dropTicks = a.cfg.DropTicks
	}
}

// Update advances every running animation by one tick.
func (a *Animator) Update() {
	if a.punchTicks > 0 {
		a.punchTicks--
	}
	if a.dropTicks > 0 {
		a.dropTicks--
	}

	// Advance flips in place, dropping finished ones
	live := a.flips[:0]
	for _, f := range a.flips {
		f.ticks++
		if f.ticks >= a.cfg.FlipTicks {
			continue
		}
		f.Progress = float64(f.ticks) / float64(a.cfg.FlipTicks)
		live = append(live, f)
	}
	a.flips = live
}

// Flips returns the pieces currently in flight.
func (a *Animator) Flips() []Flip {
	return a.flips
}

// Punching reports whether the character shows the punch pose.
func (a *Animator) Punching() bool {
	return a.punchTicks > 0
}

// DropShift returns how many rows above rest the tower is drawn. It starts
// one step up after a hit and settles back to zero.
func (a *Animator) DropShift() int {
	if a.dropTicks <= 0 || a.cfg.DropTicks <= 0 {
		return 0
	}
	step := a.cfg.DropStepHeight
	return (step*a.dropTicks + a.cfg.DropTicks - 1) / a.cfg.DropTicks
}

// Dead reports whether the game over tint is active.
func (a *Animator) Dead() bool {
	return a.dead
}

// Busy reports whether any animation is still running.
func (a *Animator) Busy() bool {
	return a.punchTicks > 0 || a.dropTicks > 0 || len(a.flips) > 0
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// FlipOffset returns the horizontal and vertical displacement of a flying
// piece, given the distance it travels before disappearing.
func (f Flip) FlipOffset(distance int) (dx, dy int) {
	t := easeOutQuad(f.Progress)
	dx = int(float64(distance) * t)
	if f.Exit == core.SideLeft {
		dx = -dx
	}
	// Small hop up in the first half, back down in the second
	dy = -int(8 * f.Progress * (1 - f.Progress))
	return dx, dy
}
