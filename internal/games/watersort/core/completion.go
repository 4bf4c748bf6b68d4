package core

// IsComplete reports whether every bottle is either empty or full of one color.
// A level whose color totals are not multiples of Capacity never completes.
func IsComplete(bottles []BottleStack) bool {
	for _, b := range bottles {
		if !b.IsSettled() {
			return false
		}
	}
	return true
}

// ProgressionSink receives the solved signal of a level.
type ProgressionSink interface {
	LevelSolved(levelIndex int)
}

// ProgressionFunc adapts a function to ProgressionSink.
type ProgressionFunc func(levelIndex int)

// LevelSolved calls f(levelIndex).
func (f ProgressionFunc) LevelSolved(levelIndex int) {
	f(levelIndex)
}

// LevelCompletionEvaluator checks the board after each settled pour and
// notifies the sink the first time the level becomes complete.
type LevelCompletionEvaluator struct {
	sink   ProgressionSink
	level  int
	solved bool
}

// NewLevelCompletionEvaluator creates an evaluator for the level at levelIndex.
// sink may be nil.
func NewLevelCompletionEvaluator(sink ProgressionSink, levelIndex int) *LevelCompletionEvaluator {
	return &LevelCompletionEvaluator{sink: sink, level: levelIndex}
}

// Evaluate reports whether the bottles are complete. The sink is notified
// only on the transition from unsolved to solved; later calls that still
// see a complete board return true without notifying again.
func (e *LevelCompletionEvaluator) Evaluate(bottles []BottleStack) bool {
	complete := IsComplete(bottles)
	if complete && !e.solved {
		e.solved = true
		if e.sink != nil {
			e.sink.LevelSolved(e.level)
		}
	}
	return complete
}

// Solved reports whether the latch has fired for the current level.
func (e *LevelCompletionEvaluator) Solved() bool {
	return e.solved
}

// Level returns the index of the level being evaluated.
func (e *LevelCompletionEvaluator) Level() int {
	return e.level
}

// Reset clears the latch and switches to another level.
func (e *LevelCompletionEvaluator) Reset(levelIndex int) {
	e.level = levelIndex
	e.solved = false
}
