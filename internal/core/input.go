package core

// Action represents a semantic sandbox action, abstracted from physical key presses.
// This allows sessions to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionMoveLeft           // A, Left arrow - push the player left
	ActionMoveRight          // D, Right arrow - push the player right
	ActionJump               // Space, W, Up - jump when standing on ground
	ActionUse                // Enter, E - dig or build at the cursor
	ActionCursorUp           // I - move the targeting cursor
	ActionCursorDown         // K
	ActionCursorLeft         // J
	ActionCursorRight        // L
	ActionNextSlot           // Tab, ] - select next inventory stack
	ActionPrevSlot           // Shift+Tab, [ - select previous inventory stack
	ActionRestart            // R - regenerate the world
	ActionQuit               // Q, Ctrl+C - exit session
	ActionPause              // P, Escape - pause/unpause
	ActionRespawn            // H, Home - return to the spawn column
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJump:
		return "Jump"
	case ActionUse:
		return "Use"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionNextSlot:
		return "NextSlot"
	case ActionPrevSlot:
		return "PrevSlot"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionRespawn:
		return "Respawn"
	default:
		return "Unknown"
	}
}

// Pointer is a mouse click in screen coordinates.
type Pointer struct {
	X, Y int
}

// InputFrame represents the input collected during one platform frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Click is set when the mouse was pressed this frame.
	Click *Pointer
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

// SetClick records a mouse press at screen position (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Pointer{X: x, Y: y}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether nothing was pressed or clicked.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Click == nil
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Click != nil {
		p := *f.Click
		clone.Click = &p
	}
	return clone
}
