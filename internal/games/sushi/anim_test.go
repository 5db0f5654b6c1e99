package sushi

import (
	"testing"

	"github.com/vovakirdan/sushi-tower/internal/config"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

func testPresentation() config.PresentationConfig {
	return config.PresentationConfig{DropStepHeight: 2, FlipTicks: 4, DropTicks: 4, PunchTicks: 2}
}

func TestAnimatorFlip(t *testing.T) {
	a := NewAnimator(testPresentation())
	a.OnEvent(core.PieceResolved{PieceID: 7, Side: core.SideRight, Exit: core.SideLeft})

	if len(a.Flips()) != 1 {
		t.Fatalf("expected 1 flip, got %d", len(a.Flips()))
	}
	f := a.Flips()[0]
	if f.Piece.ID != 7 || f.Piece.Side != core.SideRight || f.Exit != core.SideLeft {
		t.Errorf("unexpected flip %+v", f)
	}

	a.Update()
	a.Update()
	if got := a.Flips()[0].Progress; got != 0.5 {
		t.Errorf("progress after 2 of 4 ticks = %v, want 0.5", got)
	}
	dx, dy := a.Flips()[0].FlipOffset(40)
	if dx >= 0 {
		t.Errorf("left exit should move left, got dx=%d", dx)
	}
	if dy >= 0 {
		t.Errorf("flip should hop up mid-flight, got dy=%d", dy)
	}

	a.Update()
	a.Update()
	if len(a.Flips()) != 0 {
		t.Error("flip should finish after FlipTicks")
	}
}

func TestFlipOffsetDirection(t *testing.T) {
	tests := []struct {
		exit     core.Side
		progress float64
		wantDX   int
	}{
		{core.SideRight, 0, 0},
		{core.SideRight, 1, 20},
		{core.SideLeft, 1, -20},
		{core.SideRight, 0.5, 15},
	}

	for _, tt := range tests {
		f := Flip{Exit: tt.exit, Progress: tt.progress}
		if dx, _ := f.FlipOffset(20); dx != tt.wantDX {
			t.Errorf("FlipOffset(%v, %v) dx = %d, want %d", tt.exit, tt.progress, dx, tt.wantDX)
		}
	}
}

func TestAnimatorDropShift(t *testing.T) {
	a := NewAnimator(testPresentation())
	if a.DropShift() != 0 {
		t.Error("no drop before any hit")
	}

	a.OnEvent(core.PieceResolved{Exit: core.SideRight})
	want := []int{2, 2, 1, 1, 0}
	for i, w := range want {
		if got := a.DropShift(); got != w {
			t.Errorf("tick %d: DropShift() = %d, want %d", i, got, w)
		}
		a.Update()
	}
}

func TestAnimatorPunchAndDeath(t *testing.T) {
	a := NewAnimator(testPresentation())

	a.OnEvent(core.CharacterSideChanged{Side: core.SideLeft})
	if !a.Punching() {
		t.Error("tap should start the punch pose")
	}
	a.Update()
	a.Update()
	if a.Punching() {
		t.Error("punch should end after PunchTicks")
	}

	a.OnEvent(core.GameOverEntered{Reason: core.ReasonCollision})
	if !a.Dead() {
		t.Error("game over should set the red tint")
	}
	if a.DropShift() == 0 {
		t.Error("game over should drop the tower")
	}
	if !a.Busy() {
		t.Error("animator should be busy while dropping")
	}
}

func TestAnimatorNoFlipWhenDisabled(t *testing.T) {
	cfg := testPresentation()
	cfg.FlipTicks = 0
	a := NewAnimator(cfg)

	a.OnEvent(core.PieceResolved{Exit: core.SideRight})
	a.Update()
	if len(a.Flips()) != 0 {
		t.Error("flips should be skipped when flip_ticks is 0")
	}
}
