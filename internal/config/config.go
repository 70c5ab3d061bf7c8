// Package config provides YAML-based scene configuration loading and
// resolver presets for the simulator.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("config: invalid")

// EngineConfig selects how a scene's physics engine resolves contacts.
type EngineConfig struct {
	Resolver string `yaml:"resolver"` // "impulse" or "simple"
}

// Simple reports whether the simple reflect-and-separate resolver is selected.
func (e EngineConfig) Simple() bool {
	return ResolverPreset(e.Resolver) == ResolverSimple
}

func (e EngineConfig) validate() error {
	switch ResolverPreset(e.Resolver) {
	case ResolverImpulse, ResolverSimple:
		return nil
	default:
		return fmt.Errorf("%w: engine.resolver %q", ErrInvalidConfig, e.Resolver)
	}
}

// BounceConfig contains all configuration for the bounce scene.
type BounceConfig struct {
	Engine EngineConfig `yaml:"engine"`
	Bodies BounceBodies `yaml:"bodies"`
	Kick   BounceKick   `yaml:"kick"`
}

// BounceBodies defines the randomly spawned boxes.
type BounceBodies struct {
	Count      int     `yaml:"count"`
	MaxCount   int     `yaml:"max_count"`   // Upper bound for interactive spawning
	MinSize    float64 `yaml:"min_size"`    // Cells
	MaxSize    float64 `yaml:"max_size"`    // Cells
	MaxSpeed   float64 `yaml:"max_speed"`   // Cells per second
	FlashTicks int     `yaml:"flash_ticks"` // How long a box highlights after a contact
}

// BounceKick defines the impulse applied by the kick action.
type BounceKick struct {
	Speed float64 `yaml:"speed"` // Cells per second added in a random direction
}

// Validate checks the bounce config for values the scene cannot run with.
func (c BounceConfig) Validate() error {
	if err := c.Engine.validate(); err != nil {
		return err
	}
	b := c.Bodies
	if b.Count < 0 || b.MaxCount < b.Count {
		return fmt.Errorf("%w: bodies.count %d, bodies.max_count %d", ErrInvalidConfig, b.Count, b.MaxCount)
	}
	if b.MinSize <= 0 || b.MaxSize < b.MinSize {
		return fmt.Errorf("%w: bodies.min_size %v, bodies.max_size %v", ErrInvalidConfig, b.MinSize, b.MaxSize)
	}
	if b.MaxSpeed < 0 || c.Kick.Speed < 0 {
		return fmt.Errorf("%w: negative speed", ErrInvalidConfig)
	}
	return nil
}

// PongConfig contains all configuration for the pong scene.
type PongConfig struct {
	Engine   EngineConfig `yaml:"engine"`
	Ball     PongBall     `yaml:"ball"`
	Paddles  PongPaddles  `yaml:"paddles"`
	Gameplay PongGameplay `yaml:"gameplay"`
	CPU      PongCPU      `yaml:"cpu"`
	Ramp     RampConfig   `yaml:"ramp"`
}

// PongBall defines the ball body.
type PongBall struct {
	Size     float64 `yaml:"size"`      // Cells per side
	Speed    float64 `yaml:"speed"`     // Serve speed, cells per second
	MaxSpeed float64 `yaml:"max_speed"` // Cap after ramping
}

// PongPaddles defines the static paddle bodies.
type PongPaddles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // Distance from the side walls
	Speed  float64 `yaml:"speed"`  // Cells per tick when the key is held
}

// PongGameplay defines scoring rules.
type PongGameplay struct {
	WinScore   int `yaml:"win_score"`
	ServeDelay int `yaml:"serve_delay"` // Ticks before the ball is released
}

// PongCPU defines the right-hand paddle controller.
type PongCPU struct {
	Skill float64 `yaml:"skill"` // 0..1 fraction of paddle speed used to track the ball
}

// Validate checks the pong config for values the scene cannot run with.
func (c PongConfig) Validate() error {
	if err := c.Engine.validate(); err != nil {
		return err
	}
	if c.Ball.Size <= 0 || c.Ball.Speed <= 0 || c.Ball.MaxSpeed < c.Ball.Speed {
		return fmt.Errorf("%w: ball size %v, speed %v, max_speed %v",
			ErrInvalidConfig, c.Ball.Size, c.Ball.Speed, c.Ball.MaxSpeed)
	}
	if c.Paddles.Width <= 0 || c.Paddles.Height <= 0 {
		return fmt.Errorf("%w: paddle size %vx%v", ErrInvalidConfig, c.Paddles.Width, c.Paddles.Height)
	}
	if c.Gameplay.WinScore <= 0 {
		return fmt.Errorf("%w: gameplay.win_score %d", ErrInvalidConfig, c.Gameplay.WinScore)
	}
	return c.Ramp.validate()
}

// PillarsConfig contains all configuration for the pillars scene.
type PillarsConfig struct {
	Engine  EngineConfig  `yaml:"engine"`
	Pillars PillarsLayout `yaml:"pillars"`
	Bodies  PillarsBodies `yaml:"bodies"`
	Gravity float64       `yaml:"gravity"` // Cells per second squared, positive is down
}

// PillarsLayout defines the grid of static pillars.
type PillarsLayout struct {
	Columns int     `yaml:"columns"`
	Rows    int     `yaml:"rows"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// PillarsBodies defines the falling boxes.
type PillarsBodies struct {
	Count    int     `yaml:"count"`
	Size     float64 `yaml:"size"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// Validate checks the pillars config for values the scene cannot run with.
func (c PillarsConfig) Validate() error {
	if err := c.Engine.validate(); err != nil {
		return err
	}
	p := c.Pillars
	if p.Columns < 0 || p.Rows < 0 || p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: pillars %dx%d of %vx%v", ErrInvalidConfig, p.Columns, p.Rows, p.Width, p.Height)
	}
	if c.Bodies.Count < 0 || c.Bodies.Size <= 0 {
		return fmt.Errorf("%w: bodies.count %d, bodies.size %v", ErrInvalidConfig, c.Bodies.Count, c.Bodies.Size)
	}
	return nil
}

// RampConfig defines how a scene speeds up as it progresses.
type RampConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Type            string  `yaml:"type"`             // "score", "time", or "none"
	MaxAt           int     `yaml:"max_at"`           // Score/ticks at which the ramp is complete
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to 1.0 at the top of the ramp
}

func (r RampConfig) validate() error {
	switch r.Type {
	case "", "none", "score", "time":
	default:
		return fmt.Errorf("%w: ramp.type %q", ErrInvalidConfig, r.Type)
	}
	if r.SpeedMultiplier < 0 {
		return fmt.Errorf("%w: ramp.speed_multiplier %v", ErrInvalidConfig, r.SpeedMultiplier)
	}
	return nil
}

// ResolverPreset names a contact resolution strategy.
type ResolverPreset string

const (
	ResolverImpulse ResolverPreset = "impulse"
	ResolverSimple  ResolverPreset = "simple"
)

// ParseResolverPreset validates a preset name from the command line.
// An empty string means "keep the config file's choice".
func ParseResolverPreset(s string) (ResolverPreset, error) {
	switch p := ResolverPreset(s); p {
	case "", ResolverImpulse, ResolverSimple:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown resolver %q (want impulse or simple)", s)
	}
}

// ApplyResolverPreset overrides the engine's resolver unless preset is empty.
func ApplyResolverPreset(cfg *EngineConfig, preset ResolverPreset) {
	if preset != "" {
		cfg.Resolver = string(preset)
	}
}
