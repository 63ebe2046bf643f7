package core

// RuntimeConfig contains configuration passed to a sandbox session at start.
// Sessions use it to size the viewport and to seed world generation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform (default 30)
	Seed     int64 // RNG seed for world generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// SessionStats counts what the player did during a session.
type SessionStats struct {
	Ticks  int // Physics steps actually run
	Dug    int // Cells destroyed by digging
	Built  int // Cells placed from the inventory
	Picked int // Drops collected
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Stats  SessionStats
	Seed   int64 // Seed the current world was generated from
	Paused bool
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}
