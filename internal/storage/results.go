package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LevelResult is one solved attempt.
type LevelResult struct {
	ID         int64
	RunID      string
	Player     string
	LevelID    string
	LevelIndex int
	Moves      int
	Undos      int
	Hints      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Solves     int
	BestMoves  int
	AvgMoves   float64
	BestTime   time.Duration
	LastPlayed time.Time
}

const resultColumns = `id, run_id, player, level_id, level_index, moves, undos, hints, duration_ms, created_at`

// SaveResult records a solved attempt. Saving the same run twice is an error.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_results
		 (run_id, player, level_id, level_index, moves, undos, hints, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Player, r.LevelID, r.LevelIndex, r.Moves, r.Undos, r.Hints, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestResult returns the fewest-moves result of a player on a level, ties
// broken by time. Returns nil when the level was never solved.
func (s *Store) BestResult(player, levelID string) (*LevelResult, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE player = ? AND level_id = ?
		 ORDER BY moves ASC, duration_ms ASC
		 LIMIT 1`,
		player, levelID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return &r, nil
}

// TopResults returns the best results on a level across all players.
func (s *Store) TopResults(levelID string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE level_id = ?
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// RecentResults returns the latest results of a player.
func (s *Store) RecentResults(player string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// AllLevelStats retrieves statistics for every level that has been solved, keyed by level ID.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(moves), AVG(moves), MIN(duration_ms), MAX(created_at)
		 FROM level_results
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var bestMs int64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Solves, &st.BestMoves, &st.AvgMoves, &bestMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = time.Duration(bestMs) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (LevelResult, error) {
	var r LevelResult
	var durationMs int64
	var createdAt any
	err := row.Scan(&r.ID, &r.RunID, &r.Player, &r.LevelID, &r.LevelIndex,
		&r.Moves, &r.Undos, &r.Hints, &durationMs, &createdAt)
	if err != nil {
		return LevelResult{}, err
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func collectResults(rows *sql.Rows) ([]LevelResult, error) {
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}
