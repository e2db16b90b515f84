// Package storage persists the saved session, the high score and the
// finished-game history. The SQLite store uses the pure-Go
// modernc.org/sqlite driver, so no CGO toolchain is required.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultScoreLimit is used when a non-positive limit is requested.
const DefaultScoreLimit = 10

// migrations are applied in order. The database's user_version records
// how many have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		player TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		lines INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, score DESC)`,
}

// Store is a SQLite-backed KV and score history.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Player    string
	Score     int
	Level     int
	Lines     int
	CreatedAt time.Time
}

// Stats aggregates finished games.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// Open creates or opens the database at path, creating parent
// directories and bringing the schema up to date. A leading ~ expands to
// the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
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

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA does not accept bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// SchemaVersion reports how many migrations have been applied.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the blob stored under key. ok is false when it is absent.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	const upsert = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(upsert, key, value); err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}

// SaveScore appends a finished game to the history and returns its ID.
func (s *Store) SaveScore(entry ScoreEntry) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO scores (run_id, player, score, level, lines) VALUES (?, ?, ?, ?, ?)",
		entry.RunID, entry.Player, entry.Score, entry.Level, entry.Lines,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best finished games across all players, highest
// first. Ties keep insertion order.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	return s.queryScores("", limit)
}

// PlayerScores is TopScores restricted to one player.
func (s *Store) PlayerScores(player string, limit int) ([]ScoreEntry, error) {
	return s.queryScores(player, limit)
}

const scoreColumns = "id, run_id, player, score, level, lines, created_at"

func (s *Store) queryScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultScoreLimit
	}
	where, args := playerFilter(player)
	query := "SELECT " + scoreColumns + " FROM scores" + where +
		" ORDER BY score DESC, id ASC LIMIT ?"

	rows, err := s.db.Query(query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Score, &e.Level, &e.Lines, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read scores: %w", err)
	}
	return entries, nil
}

// playerFilter returns a WHERE clause for one player, or nothing for "".
func playerFilter(player string) (string, []any) {
	if player == "" {
		return "", nil
	}
	return " WHERE player = ?", []any{player}
}

// HighScore returns the best recorded score, or 0 with no history.
func (s *Store) HighScore() (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes the whole finished-game history.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetStats aggregates every finished game.
func (s *Store) GetStats() (*Stats, error) {
	return s.stats("")
}

// PlayerStats aggregates one player's finished games.
func (s *Store) PlayerStats(player string) (*Stats, error) {
	return s.stats(player)
}

func (s *Store) stats(player string) (*Stats, error) {
	where, args := playerFilter(player)
	query := `SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		COALESCE(SUM(lines), 0), MAX(created_at) FROM scores` + where

	var (
		st   Stats
		last any
	)
	err := s.db.QueryRow(query, args...).
		Scan(&st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalLines, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(last)
	return &st, nil
}

// parseTime accepts the driver's time.Time or SQLite's text DATETIME.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
