// Package core implements the sushi tower game-state core: the tower of
// pieces, the character stance and the phase machine that resolves taps and
// ticks against them. It has no rendering or terminal dependencies; hosts
// observe it through emitted events.
package core

// Side is a piece's chopstick orientation or the character's stance.
type Side int

const (
	SideNone Side = iota // No chopsticks (tower pieces only)
	SideLeft
	SideRight
)

var sideNames = map[Side]string{
	SideNone:  "none",
	SideLeft:  "left",
	SideRight: "right",
}

// String returns a lowercase name for the side.
func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return "unknown"
}

// Opposite returns the mirrored side. None stays none.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// Playable reports whether the side is a valid character stance.
func (s Side) Playable() bool {
	return s == SideLeft || s == SideRight
}

// ParseSide converts "left"/"right"/"none" (or L/R/N) to a Side.
func ParseSide(v string) (Side, bool) {
	switch v {
	case "left", "L", "l":
		return SideLeft, true
	case "right", "R", "r":
		return SideRight, true
	case "none", "N", "n":
		return SideNone, true
	}
	return SideNone, false
}

// Phase is the active game phase. It is the sole authority for which inputs
// and ticks are accepted.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseReady
	PhasePlaying
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseTitle:    "title",
	PhaseReady:    "ready",
	PhasePlaying:  "playing",
	PhaseGameOver: "gameOver",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// AcceptsTaps reports whether taps are resolved in this phase.
func (p Phase) AcceptsTaps() bool {
	return p == PhaseReady || p == PhasePlaying
}

// Piece is one stacked sushi unit. Its stack index is its position in the
// tower and is never stored on the piece itself.
type Piece struct {
	ID   uint64 // Unique within a tower, never reused
	Side Side
}

// Offset returns the vertical offset of a piece at the given stack index.
func Offset(index, step int) int {
	return index * step
}

// PlayerState is the snapshot of the player's meters.
type PlayerState struct {
	Health        float64
	Score         int
	CharacterSide Side
}
