// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockfall/internal/core"
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one finished round.
type Run struct {
	ID        int64
	RunID     string // time-ordered UUID, stable across exports
	GameID    string
	Player    string // SSH user name, empty when played locally
	ElapsedMs int64
	Pieces    int
	Inputs    int
	Holds     int
	Lines     int
	CreatedAt time.Time
}

// PPS returns pieces placed per second.
func (r Run) PPS() float64 {
	if r.ElapsedMs <= 0 {
		return 0
	}
	return float64(r.Pieces) * 1000 / float64(r.ElapsedMs)
}

// KPP returns inputs per piece.
func (r Run) KPP() float64 {
	if r.Pieces == 0 {
		return 0
	}
	return float64(r.Inputs) / float64(r.Pieces)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL,
			pieces INTEGER NOT NULL DEFAULT 0,
			inputs INTEGER NOT NULL DEFAULT 0,
			holds INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(game_id, elapsed_ms ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished round and returns it with its IDs filled in.
func (s *Store) SaveRun(gameID, player string, sum core.RunSummary) (Run, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot generate run id: %w", err)
	}

	run := Run{
		RunID:     id.String(),
		GameID:    gameID,
		Player:    player,
		ElapsedMs: sum.ElapsedMs,
		Pieces:    sum.Pieces,
		Inputs:    sum.Inputs,
		Holds:     sum.Holds,
		Lines:     sum.Lines,
		CreatedAt: time.Now().UTC(),
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, player, elapsed_ms, pieces, inputs, holds, lines, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.GameID, run.Player, run.ElapsedMs,
		run.Pieces, run.Inputs, run.Holds, run.Lines,
		run.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return run, nil
}

const runColumns = `id, run_id, game_id, player, elapsed_ms, pieces, inputs, holds, lines, created_at`

// BestRuns retrieves the fastest N runs for the given game.
func (s *Store) BestRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns retrieves the most recent N runs for the given game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// PlayerRuns retrieves a player's fastest runs for the given game.
func (s *Store) PlayerRuns(gameID, player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND player = ?
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		gameID, player, limit,
	)
}

// PersonalBest returns the fastest run for the given game. The boolean is
// false when no run exists.
func (s *Store) PersonalBest(gameID string) (Run, bool, error) {
	runs, err := s.BestRuns(gameID, 1)
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}

// RunByID looks up a run by its UUID.
func (s *Store) RunByID(runID string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.GameID, &r.Player, &r.ElapsedMs,
			&r.Pieces, &r.Inputs, &r.Holds, &r.Lines, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	RunsCount   int
	BestMs      int64
	AvgMs       float64
	TotalPieces int64
	LastPlayed  time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(elapsed_ms), 0), COALESCE(AVG(elapsed_ms), 0), COALESCE(SUM(pieces), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.BestMs, &stats.AvgMs, &stats.TotalPieces)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both driver-decoded times and raw SQLite strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
