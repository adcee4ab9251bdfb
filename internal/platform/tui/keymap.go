package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions using the
// configured bindings.
type KeyMapper struct {
	keys map[string]core.Action
}

// NewKeyMapper creates a key mapper from action bindings. Single-letter keys
// also match their upper-case form so caps lock doesn't break controls.
func NewKeyMapper(bindings map[core.Action][]string) *KeyMapper {
	km := &KeyMapper{keys: make(map[string]core.Action)}
	for action, names := range bindings {
		for _, name := range names {
			km.keys[name] = action
			if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
				km.keys[string(name[0]-'a'+'A')] = action
			}
		}
	}
	return km
}

// KeyName returns the config name of a key message.
func KeyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	s := msg.String()
	if s == " " {
		return "space"
	}
	return s
}

// Lookup returns the action bound to a key name, or ActionNone.
func (km *KeyMapper) Lookup(name string) core.Action {
	if a, ok := km.keys[name]; ok {
		return a
	}
	return core.ActionNone
}

// MapKey translates a key message to its bound action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	return km.Lookup(KeyName(msg))
}

// HoldState derives held actions from key presses on terminals that report
// presses and auto-repeats but never releases. A fresh press is held for a
// single frame, so a tap moves once. A press arriving within the window of
// the previous one is an auto-repeat and keeps the action held until the
// window runs out.
type HoldState struct {
	window  time.Duration
	last    [core.NumActions]time.Time
	repeat  [core.NumActions]bool
	pending [core.NumActions]bool
}

// NewHoldState creates a hold tracker with the given window.
func NewHoldState(window time.Duration) *HoldState {
	return &HoldState{window: window}
}

// Press records a press or auto-repeat of an action.
func (h *HoldState) Press(a core.Action, at time.Time) {
	if a < 0 || a >= core.NumActions {
		return
	}
	prev := h.last[a]
	h.repeat[a] = !prev.IsZero() && at.Sub(prev) < h.window
	if !h.repeat[a] {
		h.pending[a] = true
	}
	h.last[a] = at
}

// Frame returns the held state at now and consumes pending fresh presses.
func (h *HoldState) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for i := range h.last {
		switch {
		case h.pending[i]:
			f.Set(core.Action(i))
			h.pending[i] = false
		case h.repeat[i] && now.Sub(h.last[i]) < h.window:
			f.Set(core.Action(i))
		}
	}
	return f
}

// Reset forgets every press.
func (h *HoldState) Reset() {
	h.last = [core.NumActions]time.Time{}
	h.repeat = [core.NumActions]bool{}
	h.pending = [core.NumActions]bool{}
}
