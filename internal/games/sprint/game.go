// Package sprint implements a 40-line sprint: clear a fixed number of lines
// as fast as possible on a ten-wide board with hold, preview, wall kicks and
// delayed auto-shift.
package sprint

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Phase is the round's lifecycle state.
type Phase int

const (
	PhaseReady      Phase = iota // Countdown, input ignored
	PhaseRunning                 // Player in control
	PhaseClearedOut              // Goal reached, waiting for retry or quit
	PhaseAborted                 // Player reset or quit mid-round
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseClearedOut:
		return "cleared"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Exit records why a round stopped.
type Exit int

const (
	ExitNone Exit = iota
	ExitReset
	ExitQuit
)

var (
	activeMu     sync.RWMutex
	activeConfig = config.DefaultSprintConfig()
)

// SetConfig replaces the configuration used by games created through the
// registry. The config is validated first.
func SetConfig(cfg config.SprintConfig) error {
	if err := checkConfig(cfg); err != nil {
		return err
	}
	activeMu.Lock()
	activeConfig = cfg
	activeMu.Unlock()
	return nil
}

// ActiveConfig returns the configuration used by New.
func ActiveConfig() config.SprintConfig {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeConfig
}

// Option customizes a Game.
type Option func(*Game)

// WithClock sets the time source used for the round timer.
func WithClock(c core.Clock) Option {
	return func(g *Game) {
		g.clock = c
	}
}

// Game is one sprint session. It is not safe for concurrent use; the front
// end owns it and calls Step once per tick.
type Game struct {
	cfg   config.SprintConfig
	clock core.Clock
	rng   *rand.Rand

	tick       uint64
	phase      Phase
	exit       Exit
	introTicks int
	readyTicks int

	board *Board
	piece Piece
	queue *Queue

	hold     Kind
	hasHold  bool
	holdUsed bool

	input   *Tracker
	gravity float64
	stats   Stats
	startMs int64

	screenW  int
	screenH  int
	tooSmall bool
	pausedAt int64
}

// New creates a game using the active configuration.
func New(opts ...Option) *Game {
	g := &Game{cfg: ActiveConfig()}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock == nil {
		g.clock = core.NewSystemClock()
	}
	return g
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.SprintConfig, opts ...Option) (*Game, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	g := New(opts...)
	g.cfg = cfg
	return g, nil
}

// checkConfig validates cfg and makes sure every kind fits at spawn on an
// empty board.
func checkConfig(cfg config.SprintConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b := NewBoard(cfg.Board.Width, cfg.Board.VisibleHeight, cfg.Board.BufferRows)
	for k := Kind(0); k < NumKinds; k++ {
		if b.Blocked(k, cfg.Spawn.Rotation, cfg.Spawn.X, cfg.Spawn.Y) {
			return fmt.Errorf("%w: %s does not fit at (%d, %d)",
				config.ErrInvalidSpawn, k, cfg.Spawn.X, cfg.Spawn.Y)
		}
	}
	return nil
}

func init() {
	registry.Register("sprint", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sprint"
}

// Title returns the display name.
func (g *Game) Title() string {
	return fmt.Sprintf("Sprint %dL", g.cfg.Rules.GoalLines)
}

// Reset starts a fresh round.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.exit = ExitNone

	if g.board == nil {
		g.board = NewBoard(g.cfg.Board.Width, g.cfg.Board.VisibleHeight, g.cfg.Board.BufferRows)
	} else {
		g.board.Clear()
	}
	g.queue = NewQueue(g.rng)
	g.piece = Piece{}
	g.hold = 0
	g.hasHold = false
	g.holdUsed = false
	g.input = NewTracker(g.cfg.Rules.DASFrames)
	g.gravity = 0
	g.stats = Stats{}
	g.startMs = 0

	g.introTicks = g.cfg.IntroTicks(rc.TickRate)
	g.readyTicks = g.introTicks
	g.phase = PhaseReady
	g.resize(rc.ScreenW, rc.ScreenH)

	if g.readyTicks <= 0 {
		g.start()
	}
}

// Resize adapts the layout to a new screen size without restarting the
// round. The timer stops while the screen is too small to play.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}

func (g *Game) resize(w, h int) {
	wasSmall := g.tooSmall
	g.screenW, g.screenH = w, h
	minW, minH := g.minScreen()
	g.tooSmall = w < minW || h < minH

	if g.phase != PhaseRunning || wasSmall == g.tooSmall {
		return
	}
	now := g.clock.NowMillis()
	if g.tooSmall {
		g.pausedAt = now
	} else {
		g.startMs += now - g.pausedAt
	}
}

// start leaves the countdown and deals the first piece.
func (g *Game) start() {
	g.phase = PhaseRunning
	g.spawn(g.queue.Pop())
	g.startMs = g.clock.NowMillis()
}

func (g *Game) spawn(k Kind) {
	g.piece = NewPiece(k, g.cfg.Spawn.Rotation, g.cfg.Spawn.X, g.cfg.Spawn.Y)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	switch g.phase {
	case PhaseReady:
		g.readyTicks--
		if g.readyTicks <= 0 {
			g.start()
		}
	case PhaseRunning:
		g.update(in)
	case PhaseClearedOut:
		g.input.Update(in)
		switch {
		case g.input.Held(core.ActionQuit):
			g.exit = ExitQuit
		case g.input.Held(core.ActionReset):
			g.exit = ExitReset
		}
	case PhaseAborted:
	}

	return core.StepResult{State: g.State()}
}

// update runs one tick of player control.
func (g *Game) update(in core.InputFrame) {
	g.input.Update(in)
	g.stats.Inputs += g.input.Rising()

	switch {
	case g.input.Held(core.ActionQuit):
		g.abort(ExitQuit)
		return
	case g.input.Held(core.ActionReset):
		g.abort(ExitReset)
		return
	}

	if g.input.Pressed(core.ActionHardDrop) {
		g.hardDrop()
		if g.phase != PhaseRunning {
			return
		}
	}

	if shift := g.input.AutoShift(); shift != 0 {
		Slide(g.board, &g.piece, Horizontal, shift*g.board.Width())
	}
	if g.input.Pressed(core.ActionMoveLeft) {
		Slide(g.board, &g.piece, Horizontal, -1)
	}
	if g.input.Pressed(core.ActionMoveRight) {
		Slide(g.board, &g.piece, Horizontal, 1)
	}

	if g.input.Held(core.ActionSoftDrop) {
		Slide(g.board, &g.piece, Vertical, -g.board.Height())
	}

	if g.input.Pressed(core.ActionRotateCCW) {
		Rotate(g.board, &g.piece, SpinCCW)
	}
	if g.input.Pressed(core.ActionRotateCW) {
		Rotate(g.board, &g.piece, SpinCW)
	}
	if g.input.Pressed(core.ActionRotate180) {
		Rotate(g.board, &g.piece, SpinFlip)
	}

	if g.input.Pressed(core.ActionHold) {
		g.holdPiece()
	}

	g.gravity += g.cfg.Rules.Gravity
	if fall := int(g.gravity); fall > 0 {
		Slide(g.board, &g.piece, Vertical, -fall)
		g.gravity -= float64(fall)
	}

	g.stats.ElapsedMs = g.clock.NowMillis() - g.startMs
}

// hardDrop drops and locks the active piece, deals the next one and clears
// lines.
func (g *Game) hardDrop() {
	Slide(g.board, &g.piece, Vertical, -g.board.Height())
	g.board.Lock(g.piece)
	g.spawn(g.queue.Pop())
	g.stats.Lines += g.board.ClearLines()
	g.holdUsed = false
	g.gravity = 0
	g.stats.Pieces++

	if g.stats.Lines >= g.cfg.Rules.GoalLines {
		g.finish()
	}
}

// holdPiece stores the active kind. With the slot empty the next piece is
// dealt; otherwise the kinds are swapped, at most once per locked piece.
func (g *Game) holdPiece() {
	switch {
	case !g.hasHold:
		g.hold = g.piece.Kind
		g.hasHold = true
		g.spawn(g.queue.Pop())
		g.stats.Holds++
	case !g.holdUsed:
		held := g.hold
		g.hold = g.piece.Kind
		g.spawn(held)
		g.stats.Holds++
	}
	g.holdUsed = true
	g.gravity = 0
}

func (g *Game) finish() {
	g.stats.ElapsedMs = g.clock.NowMillis() - g.startMs
	g.phase = PhaseClearedOut
	g.board.Wash()
}

func (g *Game) abort(reason Exit) {
	g.stats.ElapsedMs = g.clock.NowMillis() - g.startMs
	g.phase = PhaseAborted
	g.exit = reason
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.stats.Lines,
		GameOver: g.phase == PhaseClearedOut || g.phase == PhaseAborted,
		Finished: g.phase == PhaseClearedOut,
		Restart:  g.exit == ExitReset,
		Quit:     g.exit == ExitQuit,
	}
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Stats returns the current counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// Summary returns the record of the round for persistence.
func (g *Game) Summary() core.RunSummary {
	return g.stats.Summary()
}
