package core

// Event is a cue emitted by the core for hosts to observe. Listeners must not
// call back into the machine while handling an event.
type Event interface {
	event()
}

// CharacterSideChanged is emitted on every accepted tap, even when the
// stance is unchanged, so the punch animation replays.
type CharacterSideChanged struct {
	Side Side
}

// PieceAppended is emitted when a piece is pushed on top of the tower.
type PieceAppended struct {
	Piece Piece
	Index int
}

// PieceResolved is emitted when the front piece is knocked off. Exit is the
// direction the piece leaves in, opposite to the character's stance.
type PieceResolved struct {
	PieceID uint64
	Side    Side
	Exit    Side
}

// HealthChanged carries the raw health value after an update.
type HealthChanged struct {
	Health float64
}

// ScoreChanged carries the score after an update.
type ScoreChanged struct {
	Score int
}

// PhaseChanged is emitted on every phase transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

// GameOverReason describes what ended a session.
type GameOverReason int

const (
	ReasonCollision GameOverReason = iota // Tapped into an armed piece
	ReasonStarved                         // Health decayed below zero
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonCollision:
		return "collision"
	case ReasonStarved:
		return "starved"
	default:
		return "unknown"
	}
}

// GameOverEntered is emitted once when the session ends.
type GameOverEntered struct {
	Reason GameOverReason
	Score  int
}

// RestartRequested is emitted when play is pressed after game over. The host
// must discard the machine and construct a new one.
type RestartRequested struct{}

func (CharacterSideChanged) event() {}
func (PieceAppended) event()        {}
func (PieceResolved) event()        {}
func (HealthChanged) event()        {}
func (ScoreChanged) event()         {}
func (PhaseChanged) event()         {}
func (GameOverEntered) event()      {}
func (RestartRequested) event()     {}

// Listener receives core events in emission order.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// emitter fans events out to listeners.
type emitter struct {
	listeners []Listener
}

func (em *emitter) emit(e Event) {
	for _, l := range em.listeners {
		l.OnEvent(e)
	}
}

// Recorder is a Listener that keeps every event it receives.
type Recorder struct {
	Events []Event
}

// OnEvent appends the event.
func (r *Recorder) OnEvent(e Event) {
	r.Events = append(r.Events, e)
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Count returns how many recorded events satisfy match.
func (r *Recorder) Count(match func(Event) bool) int {
	n := 0
	for _, e := range r.Events {
		if match(e) {
			n++
		}
	}
	return n
}
