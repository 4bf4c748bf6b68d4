// Package storage provides SQLite-based persistence for player progress and level results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer is the profile used by local play.
const DefaultPlayer = "local"

// Store manages the SQLite database connection.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db *sql.DB
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Concurrent SSH sessions write through one file; wait on locks instead of failing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			player TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, key)
		);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			undos INTEGER NOT NULL DEFAULT 0,
			hints INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level_id, moves, duration_ms);
		CREATE INDEX IF NOT EXISTS idx_level_results_player ON level_results(player, level_id);
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

// Profile returns the settings and progress view of one player.
// An empty name selects DefaultPlayer.
func (s *Store) Profile(player string) *Profile {
	if player == "" {
		player = DefaultPlayer
	}
	return &Profile{store: s, player: player}
}

// Players lists every player with stored settings or results.
func (s *Store) Players() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT player FROM settings
		 UNION
		 SELECT player FROM level_results
		 ORDER BY player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

func (s *Store) getSetting(player, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM settings WHERE player = ? AND key = ?",
		player, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) setSetting(player, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (player, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(player, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		player, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) deleteSetting(player, key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE player = ? AND key = ?", player, key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete setting %s: %w", key, err)
	}
	return nil
}

// parseTime handles both time.Time and string timestamps from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
