package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Options configures a game model.
type Options struct {
	Bindings   map[core.Action][]string
	HoldWindow time.Duration // How long a press counts as held
	Player     string        // Stored with saved runs
	Logger     *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      *KeyMapper
	hold      *HoldState
	player    string
	logger    *log.Logger
	gameState core.GameState
	quitting  bool
	runSaved  bool // Whether the current finished round has been stored
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.HoldWindow <= 0 {
		opts.HoldWindow = 120 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(opts.Bindings),
		hold:   NewHoldState(opts.HoldWindow),
		player: opts.Player,
		logger: opts.Logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records a press of the bound action.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if a := m.keys.MapKey(msg); a != core.ActionNone {
		m.hold.Press(a, time.Now())
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick advances the simulation one step with the held state at now.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	result := m.game.Step(m.hold.Frame(now))
	m.gameState = result.State

	if m.gameState.Finished && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	switch {
	case m.gameState.Quit:
		m.quitting = true
		return m, tea.Quit
	case m.gameState.Restart:
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.hold.Reset()
		m.runSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished round. Failures are logged and play continues.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	run, err := m.store.SaveRun(m.game.ID(), m.player, s.Summary())
	if err != nil {
		m.logger.Error("could not save run", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("run saved",
		"game", run.GameID,
		"run", run.RunID,
		"player", run.Player,
		"ms", run.ElapsedMs,
		"pieces", run.Pieces,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Quitting reports whether the player left.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
