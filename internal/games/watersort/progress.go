package watersort

import (
	"time"

	"github.com/google/uuid"
)

// SolveRecord describes one solved attempt of a level.
type SolveRecord struct {
	RunID      uuid.UUID // Unique per attempt; restarting a level starts a new run
	LevelID    string
	LevelIndex int
	LevelCount int
	Moves      int
	Undos      int
	Hints      int
	Duration   time.Duration
	SolvedAt   time.Time
}

// Progress is the persisted player state the game updates on a solve.
type Progress interface {
	// UnlockedLevels returns how many levels may be started, at least 1.
	UnlockedLevels() (int, error)
	// UnlockUpTo raises the unlocked level count to at least n and returns the new count.
	UnlockUpTo(n int) (int, error)
	// RecordSolve stores the result of a solved attempt.
	RecordSolve(rec SolveRecord) error
}

// NextUnlock returns the unlocked level count after solving the level at
// index. Solving the last unlocked level opens the next one; replaying an
// older level changes nothing. The count never exceeds levelCount.
func NextUnlock(unlocked, solvedIndex, levelCount int) int {
	return max(unlocked, min(solvedIndex+2, levelCount))
}

// BestMoves is implemented by progress stores that remember the fewest
// moves a level was solved in. It returns 0 for an unsolved level.
type BestMoves interface {
	BestMoves(levelID string) (int, error)
}
