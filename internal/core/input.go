package core

// Action represents a semantic input, abstracted from physical key presses.
// Held actions (Left, Right) are sampled every tick; the rest are edges.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - steer left (held)
	ActionRight          // D, Right arrow - steer right (held)
	ActionReload         // R - start a reload
	ActionPause          // P, Escape - pause/unpause
	ActionConfirm        // Enter - confirm / continue
	ActionBack           // B - return to menu
	ActionRestart        // Space on game over - restart the run
	ActionQuit           // Q, Ctrl+C - exit
	ActionChoice1        // 1 - first encounter choice
	ActionChoice2        // 2 - second encounter choice
	ActionChoice3        // 3 - third encounter choice
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionReload:
		return "Reload"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionChoice1:
		return "Choice1"
	case ActionChoice2:
		return "Choice2"
	case ActionChoice3:
		return "Choice3"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of String. It reports false for unknown names.
func ParseAction(name string) (Action, bool) {
	for a := ActionLeft; a <= ActionChoice3; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}

// ChoiceIndex returns the zero-based encounter choice selected by the
// action, or -1 if the action is not a choice.
func (a Action) ChoiceIndex() int {
	switch a {
	case ActionChoice1:
		return 0
	case ActionChoice2:
		return 1
	case ActionChoice3:
		return 2
	default:
		return -1
	}
}

// InputFrame is the set of actions active during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// List returns the active actions in ascending order.
func (f InputFrame) List() []Action {
	out := make([]Action, 0, len(f.Actions))
	for a := ActionLeft; a <= ActionChoice3; a++ {
		if f.Actions[a] {
			out = append(out, a)
		}
	}
	return out
}

// TickInput is everything the host hands the simulation for one frame.
type TickInput struct {
	// Now is the host's monotonic wall timestamp in milliseconds.
	Now float64
	// Frame holds the actions pressed or held this frame.
	Frame InputFrame
	// PointerX is the pointer/touch X in world units; nil when no pointer.
	PointerX *float64
}
