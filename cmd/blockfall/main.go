// blockfall is a 40-line sprint block-stacking game for the terminal.
//
// Usage:
//
//	blockfall play             - Play a sprint round
//	blockfall records          - Show the fastest and most recent runs
//	blockfall serve            - Start SSH server for remote play
//	blockfall list             - List registered games
//	blockfall defaults         - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Override the configured tick rate
//	--seed <value>      - Set RNG seed for reproducible piece order
//	--db <path>         - Set database path (default: ~/.blockfall/records.db)
//	--config <path>     - Load a custom sprint config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/sprint"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - 40-line sprint in your terminal",
	Long: `Blockfall is a terminal block-stacking sprint: clear 40 lines as fast
as you can. Finished runs are timed and stored locally.

Available commands:
  play      - Play a sprint round
  records   - Browse best and recent runs
  serve     - Start SSH server for remote play
  list      - Show registered games
  defaults  - Print the default configuration

Examples:
  blockfall play
  blockfall play --input kitty
  blockfall records --recent
  blockfall serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sprint config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (default depends on command)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// loadConfig reads the sprint config, applies flag overrides and installs it
// for newly created games.
func loadConfig() (config.SprintConfig, error) {
	cfg, err := config.LoadSprint(flagConfig)
	if err != nil {
		return config.SprintConfig{}, err
	}
	if flagFPS > 0 {
		cfg.Timing.FPS = flagFPS
	}
	if err := sprint.SetConfig(cfg); err != nil {
		return config.SprintConfig{}, err
	}
	return cfg, nil
}

// newLogger builds the command logger. Logs go to --log-file when set and
// to fallback otherwise. The returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// defaultLogPath is where interactive commands log, away from the screen.
func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "blockfall.log")
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
