package replay

import (
	"fmt"

	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

// Result is the outcome of re-simulating a journal.
type Result struct {
	Score  int
	Ticks  int
	Phase  core.Phase
	Reason core.GameOverReason
}

// Play re-simulates a journal on a fresh machine. Listeners observe every
// event of the replay.
func Play(j Journal, listeners ...core.Listener) (Result, error) {
	if err := j.Rules.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var reason core.GameOverReason
	onOver := core.ListenerFunc(func(e core.Event) {
		if g, ok := e.(core.GameOverEntered); ok {
			reason = g.Reason
		}
	})

	ls := make([]core.Listener, 0, len(listeners)+1)
	ls = append(ls, listeners...)
	m := core.NewMachine(j.Rules, core.NewRand(j.Seed), append(ls, onOver)...)
	m.PlayPressed()

	for i, tap := range j.Taps {
		if err := advance(m, tap.Tick); err != nil {
			return Result{}, fmt.Errorf("tap %d: %w", i, err)
		}
		if m.Phase() == core.PhaseGameOver {
			return Result{}, fmt.Errorf("%w: tap %d after game over", ErrMalformed, i)
		}
		m.Tap(tap.Side)
	}

	// Let a starved run decay to its end
	if j.Finished && m.Phase() == core.PhasePlaying {
		if err := advance(m, j.Ticks); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Score:  m.Score(),
		Ticks:  m.Ticks(),
		Phase:  m.Phase(),
		Reason: reason,
	}, nil
}

// advance ticks the machine until it has spent target ticks playing or the
// game ends.
func advance(m *core.Machine, target int) error {
	for m.Ticks() < target && m.Phase() != core.PhaseGameOver {
		if m.Phase() != core.PhasePlaying {
			return fmt.Errorf("%w: tick %d requested before play started", ErrMalformed, target)
		}
		m.Tick()
	}
	return nil
}

// Verify replays a journal and checks the recorded outcome.
func Verify(j Journal) (Result, error) {
	res, err := Play(j)
	if err != nil {
		return res, err
	}

	if res.Score != j.Score {
		return res, fmt.Errorf("replay: score mismatch: recorded %d, replayed %d", j.Score, res.Score)
	}
	if j.Finished {
		if res.Phase != core.PhaseGameOver {
			return res, fmt.Errorf("replay: recorded game over, replay ended in %v", res.Phase)
		}
		if res.Reason != j.Reason {
			return res, fmt.Errorf("replay: reason mismatch: recorded %v, replayed %v", j.Reason, res.Reason)
		}
		if res.Ticks != j.Ticks {
			return res, fmt.Errorf("replay: tick mismatch: recorded %d, replayed %d", j.Ticks, res.Ticks)
		}
	}
	return res, nil
}
