package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperDefaults(t *testing.T) {
	km := NewKeyMapper(config.DefaultSprintConfig().Bindings())

	assert.Equal(t, core.ActionMoveLeft, km.MapKey(tea.KeyMsg{Type: tea.KeyLeft}))
	assert.Equal(t, core.ActionMoveRight, km.MapKey(tea.KeyMsg{Type: tea.KeyRight}))
	assert.Equal(t, core.ActionSoftDrop, km.MapKey(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, core.ActionRotateCW, km.MapKey(tea.KeyMsg{Type: tea.KeyUp}))
	assert.Equal(t, core.ActionHardDrop, km.MapKey(tea.KeyMsg{Type: tea.KeySpace}))
	assert.Equal(t, core.ActionRotateCCW, km.MapKey(runeKey('z')))
	assert.Equal(t, core.ActionRotate180, km.MapKey(runeKey('d')))
	assert.Equal(t, core.ActionHold, km.MapKey(runeKey('c')))
	assert.Equal(t, core.ActionReset, km.MapKey(runeKey('r')))
	assert.Equal(t, core.ActionQuit, km.MapKey(runeKey('q')))
	assert.Equal(t, core.ActionNone, km.MapKey(runeKey('p')))
}

func TestKeyMapperUpperCase(t *testing.T) {
	km := NewKeyMapper(map[core.Action][]string{core.ActionRotateCCW: {"a"}})

	assert.Equal(t, core.ActionRotateCCW, km.Lookup("a"))
	assert.Equal(t, core.ActionRotateCCW, km.Lookup("A"))
	assert.Equal(t, core.ActionNone, km.Lookup("b"))
}

func TestHoldStateFreshPressIsOneFrame(t *testing.T) {
	h := NewHoldState(120 * time.Millisecond)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Press(core.ActionMoveLeft, t0)

	f := h.Frame(t0.Add(10 * time.Millisecond))
	assert.True(t, f.Has(core.ActionMoveLeft))
	assert.False(t, f.Has(core.ActionMoveRight))

	f = h.Frame(t0.Add(27 * time.Millisecond))
	assert.False(t, f.Has(core.ActionMoveLeft), "a single tap is released after one frame")
}

func TestHoldStateRepeatKeepsHeld(t *testing.T) {
	h := NewHoldState(120 * time.Millisecond)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Press(core.ActionMoveLeft, t0)
	assert.True(t, h.Frame(t0).Has(core.ActionMoveLeft))

	h.Press(core.ActionMoveLeft, t0.Add(30*time.Millisecond))
	h.Press(core.ActionMoveLeft, t0.Add(60*time.Millisecond))
	for _, ms := range []int{70, 120, 170} {
		f := h.Frame(t0.Add(time.Duration(ms) * time.Millisecond))
		assert.True(t, f.Has(core.ActionMoveLeft), "held at %dms", ms)
	}

	f := h.Frame(t0.Add(180 * time.Millisecond))
	assert.False(t, f.Has(core.ActionMoveLeft), "repeat expires after the window")
}

func TestHoldStateLatePressIsFresh(t *testing.T) {
	h := NewHoldState(120 * time.Millisecond)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Press(core.ActionHardDrop, t0)
	h.Frame(t0)

	h.Press(core.ActionHardDrop, t0.Add(500*time.Millisecond))
	assert.True(t, h.Frame(t0.Add(500*time.Millisecond)).Has(core.ActionHardDrop))
	assert.False(t, h.Frame(t0.Add(517*time.Millisecond)).Has(core.ActionHardDrop))
}

func TestHoldStateReset(t *testing.T) {
	h := NewHoldState(time.Second)
	t0 := time.Now()
	h.Press(core.ActionHardDrop, t0)
	h.Press(core.ActionNone, t0)

	h.Reset()
	assert.False(t, h.Frame(t0).Has(core.ActionHardDrop))
}
