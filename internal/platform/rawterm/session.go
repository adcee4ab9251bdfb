package rawterm

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// session owns one game and the held state derived from key events.
type session struct {
	game     registry.Game
	store    *storage.Store
	config   core.RuntimeConfig
	keys     *tui.KeyMapper
	dec      Decoder
	held     core.InputFrame
	taps     core.InputFrame // legacy presses, released after one step
	player   string
	logger   *log.Logger
	runSaved bool
	quit     bool
}

func newSession(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) *session {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &session{
		game:   game,
		store:  store,
		config: cfg,
		keys:   tui.NewKeyMapper(opts.Bindings),
		player: opts.Player,
		logger: logger,
	}
}

// feed applies terminal input to the held state.
func (s *session) feed(p []byte) {
	for _, ev := range s.dec.Feed(p) {
		if ev.Name == "ctrl+c" {
			s.quit = true
			continue
		}
		a := s.keys.Lookup(ev.Name)
		if a == core.ActionNone {
			continue
		}
		switch {
		case ev.Legacy:
			s.taps.Set(a)
		case ev.Kind == EventRelease:
			s.held.Unset(a)
		default:
			s.held.Set(a)
		}
	}
}

// frame merges held keys with pending taps.
func (s *session) frame() core.InputFrame {
	f := s.held
	for a := range core.NumActions {
		if s.taps.Has(a) {
			f.Set(a)
		}
	}
	return f
}

// step advances the game one tick.
func (s *session) step() {
	state := s.game.Step(s.frame()).State
	s.taps.Clear()

	if state.Finished && !s.runSaved {
		s.saveRun()
		s.runSaved = true
	}

	switch {
	case state.Quit:
		s.quit = true
	case state.Restart:
		s.config.Seed = time.Now().UnixNano()
		s.game.Reset(s.config)
		s.held.Clear()
		s.runSaved = false
	}
}

// resize forwards a new terminal size to the game.
func (s *session) resize(w, h int) {
	if w == s.config.ScreenW && h == s.config.ScreenH {
		return
	}
	s.config.ScreenW, s.config.ScreenH = w, h
	if r, ok := s.game.(registry.Resizer); ok {
		r.Resize(w, h)
	} else if !s.game.State().GameOver {
		s.game.Reset(s.config)
	}
}

func (s *session) saveRun() {
	if s.store == nil {
		return
	}
	sum, ok := s.game.(registry.Summarizer)
	if !ok {
		return
	}
	run, err := s.store.SaveRun(s.game.ID(), s.player, sum.Summary())
	if err != nil {
		s.logger.Error("could not save run", "game", s.game.ID(), "error", err)
		return
	}
	s.logger.Info("run saved", "game", run.GameID, "run", run.RunID, "ms", run.ElapsedMs)
}
