package core

// RuntimeConfig is what the host hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Columns available to the game
	ScreenH  int   // Rows available to the game
	TickRate int   // Ticks per second
	Seed     int64 // Base seed; 0 lets the host pick one from the clock
}

// DefaultConfig returns an 80x24, 60 tick configuration.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the host-visible summary of a game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool // Also set while the window is too small
}

// StepResult is returned by Game.Step once per tick.
type StepResult struct {
	State GameState
	// RunEnded is set on the tick a run finished, so the platform can
	// archive it exactly once.
	RunEnded bool
}
