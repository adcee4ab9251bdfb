package config

import (
	_ "embed"
)

//go:embed defaults/sprint.yaml
var defaultSprintYAML []byte

// DefaultSprintConfig returns the default sprint configuration.
func DefaultSprintConfig() SprintConfig {
	return SprintConfig{
		Board: BoardConfig{
			Width:         10,
			VisibleHeight: 20,
			BufferRows:    20,
		},
		Spawn: SpawnConfig{
			X:        4,
			Y:        19,
			Rotation: 0,
		},
		Rules: RulesConfig{
			GoalLines: 40,
			DASFrames: 5,
			Gravity:   0.02,
			BagSize:   BagSize,
			Preview:   5,
		},
		Timing: TimingConfig{
			FPS:          60,
			IntroMs:      1000,
			HoldWindowMs: 120,
		},
		Controls: DefaultControls(),
	}
}

// DefaultControls returns the default key bindings.
func DefaultControls() map[string][]string {
	return map[string][]string{
		"move_left":  {"left"},
		"move_right": {"right"},
		"soft_drop":  {"down"},
		"hard_drop":  {"space"},
		"rotate_ccw": {"a", "z"},
		"rotate_cw":  {"s", "x", "up"},
		"rotate_180": {"d"},
		"hold":       {"lshift", "c"},
		"reset":      {"r"},
		"quit":       {"q"},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSprintYAML
}
