package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/rawterm"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagInput  string
	flagGame   string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a sprint round",
	Long: `Start a 40-line sprint. The timer starts after READY / GO! and stops
when the goal is reached.

Default controls:
  Left/Right   - Move (hold to auto-shift)
  Down         - Soft drop to the floor
  Space        - Hard drop
  Z/A, X/S/Up  - Rotate counter-clockwise / clockwise
  D            - Rotate 180
  C/LShift     - Hold
  R            - Reset
  Q            - Quit

Input modes:
  tea    - Works in any terminal; a press counts as held for a short window
  kitty  - Real key releases via the kitty keyboard protocol (kitty, foot,
           WezTerm, Ghostty, recent Alacritty)

Examples:
  blockfall play
  blockfall play --input kitty
  blockfall play --seed 42
  blockfall play --config ./my-sprint.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagInput, "input", "tea", "Input mode: tea or kitty")
	playCmd.Flags().StringVar(&flagGame, "game", "sprint", "Registered game to play")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with finished runs")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagInput != "tea" && flagInput != "kitty" {
		return fmt.Errorf("unknown input mode %q (want tea or kitty)", flagInput)
	}

	sprintCfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagLogFile == "" {
		flagLogFile = defaultLogPath()
	}
	logger, closeLog, err := newLogger("blockfall", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(flagGame)
	if err != nil {
		return fmt.Errorf("%w (run 'blockfall list' to see available games)", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: sprintCfg.Timing.FPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting round", "game", game.ID(), "input", flagInput, "fps", cfg.TickRate, "seed", cfg.Seed)

	if flagInput == "kitty" {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return rawterm.Run(ctx, game, store, cfg, rawterm.Options{
			Bindings: sprintCfg.Bindings(),
			Player:   flagPlayer,
			Logger:   logger,
		})
	}

	return tui.Run(game, store, cfg, tui.Options{
		Bindings:   sprintCfg.Bindings(),
		HoldWindow: time.Duration(sprintCfg.Timing.HoldWindowMs) * time.Millisecond,
		Player:     flagPlayer,
		Logger:     logger,
	})
}
