package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second requested from the host (default 60)
	Seed     int64  // Base seed; 0 means use the configured static seed
	SeedTag  string // Purpose-tag prefix for hashed streams; empty means the configured tag
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase    string // Name of the current run state (e.g. "play", "boss")
	Score    int    // Current score
	Stickers int    // Stickers collected in this run
	Level    int    // Current level number (1-based)
	Lives    int    // Remaining lives
	GameOver bool   // Whether the run has ended (lost or won)
	Won      bool   // Whether the run ended in victory
	Paused   bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Stats holds run-independent counters that outlive a single run.
type Stats struct {
	PersonalBest     int
	LifetimeStickers int
	LifetimeGames    int
}
