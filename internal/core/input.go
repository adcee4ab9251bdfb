package core

// Action represents a logical game action, abstracted from physical keys.
// Front ends translate keyboard events into actions; games never see keys.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotateCCW
	ActionRotateCW
	ActionRotate180
	ActionHold
	ActionReset
	ActionQuit

	// NumActions is the number of logical actions.
	NumActions
)

// ActionNone is returned by key mappers for unbound keys.
const ActionNone Action = -1

// GameplayActions is the number of leading actions that count as player
// inputs for statistics; reset and quit are excluded.
const GameplayActions = int(ActionHold) + 1

var actionNames = [NumActions]string{
	"move_left",
	"move_right",
	"soft_drop",
	"hard_drop",
	"rotate_ccw",
	"rotate_cw",
	"rotate_180",
	"hold",
	"reset",
	"quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < 0 || a >= NumActions {
		return "none"
	}
	return actionNames[a]
}

// ParseAction resolves a config name back to its action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// InputFrame is the held state of every action during one simulation tick.
// It is a plain value; copying it snapshots the state.
type InputFrame struct {
	held [NumActions]bool
}

// NewInputFrame creates a frame with nothing held.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as held.
func (f *InputFrame) Set(a Action) {
	if a < 0 || a >= NumActions {
		return
	}
	f.held[a] = true
}

// Unset marks an action as released.
func (f *InputFrame) Unset(a Action) {
	if a < 0 || a >= NumActions {
		return
	}
	f.held[a] = false
}

// Has returns true if the action is held in this frame.
func (f InputFrame) Has(a Action) bool {
	if a < 0 || a >= NumActions {
		return false
	}
	return f.held[a]
}

// Clear releases every action.
func (f *InputFrame) Clear() {
	f.held = [NumActions]bool{}
}

// Held returns the raw per-action state.
func (f InputFrame) Held() [NumActions]bool {
	return f.held
}
