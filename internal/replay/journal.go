// Package replay records sushi tower runs as journals (seed, rules and the
// tick of every tap) and re-simulates them deterministically.
package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

// ErrMalformed is returned for journals that cannot be decoded or replayed.
var ErrMalformed = errors.New("replay: malformed journal")

// Tap is one accepted tap: the number of playing ticks elapsed before it
// and the side tapped.
type Tap struct {
	Tick int
	Side core.Side
}

// Journal is everything needed to reproduce a run.
type Journal struct {
	ID        string
	Variant   string // Game ID the run was played in
	Seed      int64
	Rules     core.Rules
	Taps      []Tap
	Score     int
	Ticks     int
	Reason    core.GameOverReason
	Finished  bool // Run reached game over
	StartedAt time.Time
}

// EncodeTaps serialises taps as space separated "<tick><L|R>" tokens,
// e.g. "0L 12R 30L".
func EncodeTaps(taps []Tap) string {
	var sb strings.Builder
	for i, tap := range taps {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(tap.Tick))
		if tap.Side == core.SideLeft {
			sb.WriteByte('L')
		} else {
			sb.WriteByte('R')
		}
	}
	return sb.String()
}

// DecodeTaps parses the EncodeTaps format. Ticks must not decrease.
func DecodeTaps(s string) ([]Tap, error) {
	fields := strings.Fields(s)
	taps := make([]Tap, 0, len(fields))
	last := 0

	for _, f := range fields {
		if len(f) < 2 {
			return nil, fmt.Errorf("%w: bad token %q", ErrMalformed, f)
		}
		side, ok := core.ParseSide(f[len(f)-1:])
		if !ok || !side.Playable() {
			return nil, fmt.Errorf("%w: bad side in %q", ErrMalformed, f)
		}
		tick, err := strconv.Atoi(f[:len(f)-1])
		if err != nil || tick < last {
			return nil, fmt.Errorf("%w: bad tick in %q", ErrMalformed, f)
		}
		last = tick
		taps = append(taps, Tap{Tick: tick, Side: side})
	}

	return taps, nil
}

// Recorder builds a journal by listening to a machine's events.
type Recorder struct {
	journal Journal
	machine *core.Machine
}

// NewRecorder starts a journal for a machine built from rules and seed and
// subscribes to it.
func NewRecorder(variant string, seed int64, m *core.Machine) *Recorder {
	r := &Recorder{
		journal: Journal{
			ID:        uuid.NewString(),
			Variant:   variant,
			Seed:      seed,
			Rules:     m.Rules(),
			StartedAt: time.Now(),
		},
		machine: m,
	}
	m.Subscribe(r)
	return r
}

// OnEvent implements core.Listener.
func (r *Recorder) OnEvent(e core.Event) {
	switch ev := e.(type) {
	case core.CharacterSideChanged:
		// Emitted exactly once per accepted tap
		r.journal.Taps = append(r.journal.Taps, Tap{Tick: r.machine.Ticks(), Side: ev.Side})
	case core.ScoreChanged:
		r.journal.Score = ev.Score
	case core.GameOverEntered:
		r.journal.Finished = true
		r.journal.Reason = ev.Reason
		r.journal.Score = ev.Score
		r.journal.Ticks = r.machine.Ticks()
	}
}

// Journal returns a copy of the journal so far.
func (r *Recorder) Journal() Journal {
	j := r.journal
	j.Ticks = r.machine.Ticks()
	j.Taps = append([]Tap(nil), r.journal.Taps...)
	return j
}
