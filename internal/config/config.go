// Package config provides YAML-based configuration loading and validation for
// the sprint game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Validation errors. Returned errors wrap one of these.
var (
	ErrInvalidBoard    = errors.New("config: invalid board")
	ErrInvalidSpawn    = errors.New("config: invalid spawn")
	ErrInvalidRules    = errors.New("config: invalid rules")
	ErrInvalidTiming   = errors.New("config: invalid timing")
	ErrInvalidControls = errors.New("config: invalid controls")
)

// BagSize is the only bag size the randomizer supports: one of each kind.
const BagSize = 7

// SprintConfig contains all configuration for a sprint round.
type SprintConfig struct {
	Board    BoardConfig         `yaml:"board"`
	Spawn    SpawnConfig         `yaml:"spawn"`
	Rules    RulesConfig         `yaml:"rules"`
	Timing   TimingConfig        `yaml:"timing"`
	Controls map[string][]string `yaml:"controls"` // action name -> key names
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width         int `yaml:"width"`
	VisibleHeight int `yaml:"visible_height"`
	BufferRows    int `yaml:"buffer_rows"` // Hidden rows above the visible field
}

// SpawnConfig defines where new pieces appear.
type SpawnConfig struct {
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
	Rotation int `yaml:"rotation"`
}

// RulesConfig defines the gameplay constants.
type RulesConfig struct {
	GoalLines int     `yaml:"goal_lines"`
	DASFrames int     `yaml:"das_frames"` // Held frames before auto-shift
	Gravity   float64 `yaml:"gravity"`    // Cells per frame
	BagSize   int     `yaml:"bag_size"`
	Preview   int     `yaml:"preview"` // Next-queue length shown
}

// TimingConfig defines frame pacing and front-end timing.
type TimingConfig struct {
	FPS          int `yaml:"fps"`
	IntroMs      int `yaml:"intro_ms"`       // READY/GO delay before the timer starts
	HoldWindowMs int `yaml:"hold_window_ms"` // Press-only terminals: how long a press counts as held
}

// InternalHeight is the full board height including hidden buffer rows.
func (c SprintConfig) InternalHeight() int {
	return c.Board.VisibleHeight + c.Board.BufferRows
}

// IntroTicks converts the intro delay into simulation ticks at tickRate,
// falling back to the configured FPS when tickRate is not positive.
func (c SprintConfig) IntroTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = c.Timing.FPS
	}
	return c.Timing.IntroMs * tickRate / 1000
}

// Validate checks the configuration for values a round cannot start with.
func (c SprintConfig) Validate() error {
	if c.Board.Width < 4 {
		return fmt.Errorf("%w: width %d is narrower than a piece", ErrInvalidBoard, c.Board.Width)
	}
	if c.Board.VisibleHeight < 4 {
		return fmt.Errorf("%w: visible height %d is too small", ErrInvalidBoard, c.Board.VisibleHeight)
	}
	if c.Board.BufferRows < 2 {
		return fmt.Errorf("%w: need at least 2 buffer rows above the field, got %d", ErrInvalidBoard, c.Board.BufferRows)
	}

	if c.Spawn.X < 0 || c.Spawn.X >= c.Board.Width {
		return fmt.Errorf("%w: x %d outside [0, %d)", ErrInvalidSpawn, c.Spawn.X, c.Board.Width)
	}
	if c.Spawn.Y < 0 || c.Spawn.Y >= c.InternalHeight() {
		return fmt.Errorf("%w: y %d outside [0, %d)", ErrInvalidSpawn, c.Spawn.Y, c.InternalHeight())
	}
	if c.Spawn.Rotation < 0 || c.Spawn.Rotation > 3 {
		return fmt.Errorf("%w: rotation %d outside [0, 3]", ErrInvalidSpawn, c.Spawn.Rotation)
	}

	if c.Rules.GoalLines <= 0 || c.Rules.GoalLines > c.InternalHeight() {
		return fmt.Errorf("%w: goal %d outside [1, %d]", ErrInvalidRules, c.Rules.GoalLines, c.InternalHeight())
	}
	if c.Rules.DASFrames < 1 {
		return fmt.Errorf("%w: das_frames must be positive, got %d", ErrInvalidRules, c.Rules.DASFrames)
	}
	if c.Rules.Gravity < 0 {
		return fmt.Errorf("%w: gravity must not be negative, got %v", ErrInvalidRules, c.Rules.Gravity)
	}
	if c.Rules.BagSize != BagSize {
		return fmt.Errorf("%w: bag_size must be %d, got %d", ErrInvalidRules, BagSize, c.Rules.BagSize)
	}
	if c.Rules.Preview < 0 || c.Rules.Preview > BagSize {
		return fmt.Errorf("%w: preview %d outside [0, %d]", ErrInvalidRules, c.Rules.Preview, BagSize)
	}

	if c.Timing.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidTiming, c.Timing.FPS)
	}
	if c.Timing.IntroMs < 0 || c.Timing.HoldWindowMs < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidTiming)
	}

	for name := range c.Controls {
		if _, ok := core.ParseAction(name); !ok {
			return fmt.Errorf("%w: unknown action %q", ErrInvalidControls, name)
		}
	}
	return nil
}

// Bindings returns the key names bound to each action.
func (c SprintConfig) Bindings() map[core.Action][]string {
	out := make(map[core.Action][]string, len(c.Controls))
	for name, keys := range c.Controls {
		if a, ok := core.ParseAction(name); ok {
			out[a] = keys
		}
	}
	return out
}
