package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to size their world and seed their RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// HeadlessConfig returns the fixed-size config used by batch runs and
// spectator streams, where there is no terminal to measure.
func HeadlessConfig(seed int64) RuntimeConfig {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// SceneState represents the current state of a scene.
// Returned by Scene.State() to communicate status to the platform.
type SceneState struct {
	Score    int  // Current score (meaning is scene specific)
	GameOver bool // Whether the scene has ended
	Paused   bool // Whether the scene is paused
	Tick     int  // Physics ticks run since the last reset
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State SceneState
}
