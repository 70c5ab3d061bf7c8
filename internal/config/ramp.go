package config

import "math"

// Ramp scales a scene's speed as its score or tick count grows.
type Ramp struct {
	cfg RampConfig
}

// NewRamp creates a ramp from its config.
func NewRamp(cfg RampConfig) *Ramp {
	return &Ramp{cfg: cfg}
}

// IsEnabled returns whether the ramp progresses at all.
func (r *Ramp) IsEnabled() bool {
	return r.cfg.Enabled && r.cfg.Type != "none" && r.cfg.Type != ""
}

// Level returns the ramp progress in [0, 1] for the given score and ticks.
func (r *Ramp) Level(score, ticks int) float64 {
	if !r.IsEnabled() {
		return 0
	}

	maxAt := float64(r.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch r.cfg.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	}
	return clampF(progress, 0, 1)
}

// Speed returns base scaled from 1x up to (1 + speed_multiplier)x along the ramp.
func (r *Ramp) Speed(base float64, score, ticks int) float64 {
	return base * (1 + r.Level(score, ticks)*r.cfg.SpeedMultiplier)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
