package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/sprint"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// scriptedGame reports whatever state the test sets.
type scriptedGame struct {
	state  core.GameState
	resets int
	frames []core.InputFrame
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}
func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.state}
}
func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }
func (g *scriptedGame) Summary() core.RunSummary {
	return core.RunSummary{ElapsedMs: 42000, Pieces: 100, Inputs: 260, Holds: 4, Lines: 40}
}

func testOptions() Options {
	return Options{
		Bindings: config.DefaultSprintConfig().Bindings(),
		Logger:   log.New(io.Discard),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func tick() TickMsg {
	return TickMsg(time.Now())
}

func TestModelPressBecomesHeld(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, core.DefaultConfig(), testOptions())
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := update(t, m, tick())
	assert.NotNil(t, cmd)

	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionMoveLeft))
	assert.False(t, g.frames[0].Has(core.ActionMoveRight))
}

func TestModelSingleTapMovesOneCell(t *testing.T) {
	cfg := config.DefaultSprintConfig()
	cfg.Timing.IntroMs = 0
	cfg.Rules.Gravity = 0
	g, err := sprint.NewWithConfig(cfg)
	require.NoError(t, err)

	m := NewModel(g, nil, core.DefaultConfig(), Options{
		Bindings:   cfg.Bindings(),
		HoldWindow: time.Duration(cfg.Timing.HoldWindowMs) * time.Millisecond,
		Logger:     log.New(io.Discard),
	})
	m.Init()
	startX := g.Snapshot().Piece.X

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	base := time.Now()
	for i := 1; i <= 20; i++ {
		m, _ = update(t, m, TickMsg(base.Add(time.Duration(i)*time.Second/60)))
	}

	snap := g.Snapshot()
	assert.Equal(t, startX-1, snap.Piece.X, "%s moved past one cell", snap.Piece.Kind)
	assert.Equal(t, 1, snap.Stats.Inputs)
}

func TestModelQuitFromGame(t *testing.T) {
	cfg := config.DefaultSprintConfig()
	cfg.Timing.IntroMs = 0
	g, err := sprint.NewWithConfig(cfg)
	require.NoError(t, err)

	m := NewModel(g, nil, core.DefaultConfig(), testOptions())
	m.Init()

	m, _ = update(t, m, runeKey('q'))
	m, cmd := update(t, m, tick())

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
	assert.Equal(t, sprint.PhaseAborted, g.Phase())
	assert.Empty(t, m.View())
}

func TestModelCtrlC(t *testing.T) {
	m := NewModel(&scriptedGame{}, nil, core.DefaultConfig(), testOptions())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &scriptedGame{}
	opts := testOptions()
	opts.Player = "alice"
	m := NewModel(g, store, core.DefaultConfig(), opts)
	m.Init()

	g.state = core.GameState{GameOver: true, Finished: true, Score: 40}
	m, _ = update(t, m, tick())
	_, _ = update(t, m, tick())

	runs, err := store.BestRuns("scripted", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "alice", runs[0].Player)
	assert.Equal(t, int64(42000), runs[0].ElapsedMs)
	assert.Equal(t, 4, runs[0].Holds)
}

func TestModelAbortedRunNotSaved(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &scriptedGame{}
	m := NewModel(g, store, core.DefaultConfig(), testOptions())
	m.Init()

	g.state = core.GameState{GameOver: true}
	_, _ = update(t, m, tick())

	runs, err := store.BestRuns("scripted", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestModelRestart(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, core.DefaultConfig(), testOptions())
	m.Init()
	require.Equal(t, 1, g.resets)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	g.state = core.GameState{GameOver: true, Restart: true}
	m, cmd := update(t, m, tick())

	assert.NotNil(t, cmd)
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.Quitting())

	_, _ = update(t, m, tick())
	require.Len(t, g.frames, 2)
	assert.False(t, g.frames[1].Has(core.ActionMoveLeft), "held keys are forgotten on restart")
}

func TestModelResize(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, core.DefaultConfig(), testOptions())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 2, g.resets, "games without Resize restart")
	assert.Contains(t, m.View(), "scripted")

	cfg := config.DefaultSprintConfig()
	cfg.Timing.IntroMs = 0
	sg, err := sprint.NewWithConfig(cfg)
	require.NoError(t, err)
	sm := NewModel(sg, nil, core.DefaultConfig(), testOptions())
	sm.Init()

	sm, _ = update(t, sm, tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Contains(t, sm.View(), "Window too small")
	assert.Equal(t, sprint.PhaseRunning, sg.Phase())
}
