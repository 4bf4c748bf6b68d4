package core

// RuntimeConfig is handed to a game when it is (re)started.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the platform-visible status of a game.
type GameState struct {
	Level    int  // Current level, 1-indexed
	Moves    int  // Accepted pours in the current attempt
	Solved   bool // Current level is solved
	Finished bool // Every level has been solved in this run
	Paused   bool
	Busy     bool // A pour animation is playing and input is ignored
}

// StepResult is returned by a game after each simulation tick.
type StepResult struct {
	State GameState
}
