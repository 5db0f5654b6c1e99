package replay

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

// Policy picks the side to tap given the current front piece.
type Policy interface {
	Choose(front core.Piece) core.Side
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(front core.Piece) core.Side

// Choose calls f(front).
func (f PolicyFunc) Choose(front core.Piece) core.Side {
	return f(front)
}

// Greedy always taps away from the front piece's chopsticks, keeping the
// previous stance in front of plain pieces.
func Greedy() Policy {
	last := core.SideLeft
	return PolicyFunc(func(front core.Piece) core.Side {
		if front.Side.Playable() {
			last = front.Side.Opposite()
		}
		return last
	})
}

// Random taps a uniformly random side.
func Random(seed int64) Policy {
	rng := rand.New(rand.NewSource(seed))
	return PolicyFunc(func(core.Piece) core.Side {
		if rng.Intn(2) == 0 {
			return core.SideLeft
		}
		return core.SideRight
	})
}

// ParsePolicy resolves a policy by name.
func ParsePolicy(name string, seed int64) (Policy, error) {
	switch name {
	case "greedy":
		return Greedy(), nil
	case "random":
		return Random(seed), nil
	}
	return nil, fmt.Errorf("replay: unknown policy %q (want greedy or random)", name)
}

// AutoplayOptions controls a headless run.
type AutoplayOptions struct {
	Variant  string
	Seed     int64
	Rules    core.Rules
	Policy   Policy
	MaxTaps  int // Stop after this many taps (0 = DefaultTapLimit)
	TapEvery int // Playing ticks between taps
}

// DefaultTapLimit caps runs that set no MaxTaps, so a bot that cannot lose
// still stops.
const DefaultTapLimit = 10000

// Endless reports whether a bot that never taps into chopsticks survives
// forever when tapping every tapEvery ticks: each tap refills at least as
// much health as the ticks in between drain.
func Endless(rules core.Rules, tapEvery int) bool {
	return float64(tapEvery)*rules.HealthDecay <= rules.HealthGain
}

// Autoplay drives a fresh machine with a policy and returns its journal.
// Listeners observe every event of the run.
func Autoplay(opts AutoplayOptions, listeners ...core.Listener) Journal {
	m := core.NewMachine(opts.Rules, core.NewRand(opts.Seed), listeners...)
	rec := NewRecorder(opts.Variant, opts.Seed, m)
	m.PlayPressed()

	limit := opts.MaxTaps
	if limit <= 0 {
		limit = DefaultTapLimit
	}
	for taps := 0; taps < limit; taps++ {
		front, _ := m.Tower().Front()
		m.Tap(opts.Policy.Choose(front))
		if m.Phase() == core.PhaseGameOver {
			break
		}
		for i := 0; i < opts.TapEvery && m.Phase() == core.PhasePlaying; i++ {
			m.Tick()
		}
		if m.Phase() == core.PhaseGameOver {
			break
		}
	}

	return rec.Journal()
}
