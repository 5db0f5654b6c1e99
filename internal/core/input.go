package core

// Action is a host-independent input intent. Key bindings map to actions;
// games never see raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Chop from the left
	ActionRight          // Chop from the right
	ActionConfirm        // Play, or retry after game over
	ActionBack           // Leave to the menu
	ActionRestart        // Retry after game over
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// InputFrame represents the input collected between two simulation ticks.
// Actions keeps the press order so fast double taps resolve in sequence.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make([]Action, 0, 4),
	}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
