package core

// RuntimeConfig contains configuration passed to the runner at initialization.
// The runner uses this to size the viewport and seed its RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means use current time in platform layer
}

// GameState represents the externally visible status of a session.
// Returned by Session.State() to communicate status to the platform.
type GameState struct {
	Phase    string // Session phase name (select, level, start, playing, quiz, gameover)
	Score    int    // Current score
	Lives    int    // Remaining lives
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the run is paused
}
