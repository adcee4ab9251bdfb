package sprint

import "github.com/vovakirdan/blockfall/internal/core"

// Tracker turns per-tick held state into edges and auto-shift timers.
type Tracker struct {
	cur, prev [core.NumActions]bool
	das       int
	leftDAS   int
	rightDAS  int
}

// NewTracker creates a tracker that starts auto-shifting after das ticks.
func NewTracker(das int) *Tracker {
	return &Tracker{das: das}
}

// Update records the new held state and advances the auto-shift timers.
func (t *Tracker) Update(in core.InputFrame) {
	t.prev = t.cur
	t.cur = in.Held()

	// Charging pauses while the opposite timer sits one tick short of DAS.
	if t.cur[core.ActionMoveLeft] {
		if t.rightDAS != t.das-1 {
			t.leftDAS++
		}
	} else {
		t.leftDAS = 0
	}
	if t.cur[core.ActionMoveRight] {
		if t.leftDAS != t.das-1 {
			t.rightDAS++
		}
	} else {
		t.rightDAS = 0
	}
}

// Pressed reports a rising edge on this tick.
func (t *Tracker) Pressed(a core.Action) bool {
	return t.cur[a] && !t.prev[a]
}

// Held reports whether the action is held on this tick.
func (t *Tracker) Held(a core.Action) bool {
	return t.cur[a]
}

// AutoShift returns -1 or +1 when a horizontal direction is charged, else 0.
func (t *Tracker) AutoShift() int {
	switch {
	case t.leftDAS > t.das && (t.rightDAS == 0 || t.rightDAS > t.leftDAS):
		return -1
	case t.rightDAS > t.das && (t.leftDAS == 0 || t.leftDAS > t.rightDAS):
		return 1
	default:
		return 0
	}
}

// Rising counts rising edges among the gameplay actions on this tick.
func (t *Tracker) Rising() int {
	n := 0
	for a := 0; a < core.GameplayActions; a++ {
		if t.cur[a] && !t.prev[a] {
			n++
		}
	}
	return n
}

// DAS returns the current left and right auto-shift timers.
func (t *Tracker) DAS() (left, right int) {
	return t.leftDAS, t.rightDAS
}
