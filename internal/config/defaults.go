package config

import (
	_ "embed"
)

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/pillars.yaml
var defaultPillarsYAML []byte

// DefaultBounceConfig returns the default bounce configuration.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Engine: EngineConfig{Resolver: string(ResolverImpulse)},
		Bodies: BounceBodies{
			Count:      12,
			MaxCount:   40,
			MinSize:    2,
			MaxSize:    5,
			MaxSpeed:   30,
			FlashTicks: 8,
		},
		Kick: BounceKick{
			Speed: 20,
		},
	}
}

// DefaultPongConfig returns the default pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Engine: EngineConfig{Resolver: string(ResolverSimple)},
		Ball: PongBall{
			Size:     1,
			Speed:    30,
			MaxSpeed: 70,
		},
		Paddles: PongPaddles{
			Width:  1,
			Height: 5,
			Offset: 2,
			Speed:  1,
		},
		Gameplay: PongGameplay{
			WinScore:   5,
			ServeDelay: 60, // 1 second at 60fps
		},
		CPU: PongCPU{
			Skill: 0.7,
		},
		Ramp: RampConfig{
			Enabled:         true,
			Type:            "score",
			MaxAt:           8,
			SpeedMultiplier: 1.0,
		},
	}
}

// DefaultPillarsConfig returns the default pillars configuration.
func DefaultPillarsConfig() PillarsConfig {
	return PillarsConfig{
		Engine: EngineConfig{Resolver: string(ResolverImpulse)},
		Pillars: PillarsLayout{
			Columns: 6,
			Rows:    2,
			Width:   2,
			Height:  3,
		},
		Bodies: PillarsBodies{
			Count:    10,
			Size:     2,
			MaxSpeed: 25,
		},
		Gravity: 30,
	}
}

// GetDefaultYAML returns the embedded default YAML for a scene.
func GetDefaultYAML(sceneID string) []byte {
	switch sceneID {
	case "bounce":
		return defaultBounceYAML
	case "pong":
		return defaultPongYAML
	case "pillars":
		return defaultPillarsYAML
	default:
		return nil
	}
}
