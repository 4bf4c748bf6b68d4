package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Move the bottle cursor left
	ActionRight          // Move the bottle cursor right
	ActionUp             // Move the bottle cursor to the row above
	ActionDown           // Move the bottle cursor to the row below
	ActionSelect         // Tap the bottle under the cursor
	ActionCancel         // Drop the current selection
	ActionUndo           // Revert the last pour
	ActionHint           // Show the next move of a solution
	ActionRestart        // Restart the current level
	ActionNext           // Advance to the next level after a solve
	ActionPause          // Toggle pause
	ActionBack           // Return to the level picker
	ActionQuit           // Leave the program
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionUndo:
		return "Undo"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input of one simulation tick.
// Besides semantic actions it carries direct bottle picks: a numbered slot
// from the keyboard and pointer clicks that the game resolves to bottles.
type InputFrame struct {
	Actions  map[Action]bool
	Slot     int     // 1-based bottle number picked by key, 0 when none
	Pointers []Point // Clicks in screen cells, in arrival order
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SetSlot records a numbered bottle pick. Values below 1 are ignored.
func (f *InputFrame) SetSlot(n int) {
	if n < 1 {
		return
	}
	f.Slot = n
}

// AddPointer records a click at the given screen cell.
func (f *InputFrame) AddPointer(x, y int) {
	f.Pointers = append(f.Pointers, Point{X: x, Y: y})
}

// Empty reports whether nothing was recorded this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Slot == 0 && len(f.Pointers) == 0
}

// Clear resets the frame for the next tick, keeping its allocations.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Slot = 0
	f.Pointers = f.Pointers[:0]
}
