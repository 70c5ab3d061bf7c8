// Package bounce implements a box sandbox: randomly sized bodies drift around
// the terminal, collide with each other and bounce off the walls.
package bounce

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/boxsim/internal/config"
	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/physics"
	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/scenes"
)

// ID is the registry key of the scene.
const ID = "bounce"

// Visual characters for rendering
const (
	BodyChar  = '█'
	FlashChar = '▓'
)

// spawnAttempts bounds the search for a free spot when placing a body.
const spawnAttempts = 16

// body is the owner of one dynamic proxy.
type body struct {
	scene *Scene
	proxy *physics.Proxy
	flash int // Ticks of highlight left
	hits  int
}

// OnCollision implements physics.CollisionHandler.
func (b *body) OnCollision(_ *physics.Proxy, _ *physics.Collision) {
	b.flash = b.scene.cfg.Bodies.FlashTicks
	b.hits++
}

// Scene implements the bounce sandbox.
type Scene struct {
	cfg      config.BounceConfig
	fixedCfg bool // Set by NewWithConfig; Reset keeps cfg instead of loading

	runtime core.RuntimeConfig
	engine  *physics.Engine
	bodies  []*body
	rng     *rand.Rand
	paused  bool
}

// New creates a bounce scene that loads its config on Reset.
func New() *Scene {
	return &Scene{cfg: config.DefaultBounceConfig()}
}

// NewWithConfig creates a bounce scene pinned to cfg.
func NewWithConfig(cfg config.BounceConfig) *Scene {
	return &Scene{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return ID
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Bounce"
}

// Reset rebuilds the world and spawns the initial bodies.
func (s *Scene) Reset(runtime core.RuntimeConfig) {
	if !s.fixedCfg {
		cfg, err := config.LoadBounce(scenes.ConfigPath(ID))
		if err != nil {
			cfg = config.DefaultBounceConfig()
		}
		s.cfg = cfg
	}

	s.runtime = runtime
	s.rng = rand.New(rand.NewSource(runtime.Seed))
	s.engine = scenes.MustEngine(scenes.World(runtime), s.cfg.Engine)
	s.bodies = nil
	s.paused = false

	for range s.cfg.Bodies.Count {
		s.spawn()
	}
}

// spawn adds one body at a random free spot with a random velocity.
// It reports whether a body was added.
func (s *Scene) spawn() bool {
	world := s.engine.World()
	b := s.cfg.Bodies
	limit := math.Min(world.Width(), world.Height())

	w := math.Min(b.MinSize+s.rng.Float64()*(b.MaxSize-b.MinSize), limit)
	h := math.Min(b.MinSize+s.rng.Float64()*(b.MaxSize-b.MinSize), limit)

	var box physics.Rect
	for attempt := range spawnAttempts {
		x := world.Left() + s.rng.Float64()*(world.Width()-w)
		y := world.Top() + s.rng.Float64()*(world.Height()-h)
		box = physics.NewRect(x, y, w, h)
		if !s.occupied(box) || attempt == spawnAttempts-1 {
			break
		}
	}

	velocity := physics.FromAngle(s.rng.Float64()*2*math.Pi, s.rng.Float64()*b.MaxSpeed)
	owner := &body{scene: s}
	p, err := s.engine.Add(physics.NewProxy(box, velocity, owner))
	if err != nil {
		return false
	}
	owner.proxy = p
	s.bodies = append(s.bodies, owner)
	return true
}

// occupied reports whether box touches any existing body.
func (s *Scene) occupied(box physics.Rect) bool {
	for _, b := range s.bodies {
		if b.proxy.OuterBox.Intersects(box) {
			return true
		}
	}
	return false
}

// kick adds a random push to every body.
func (s *Scene) kick() {
	for _, b := range s.bodies {
		b.proxy.Velocity.Add(physics.FromAngle(s.rng.Float64()*2*math.Pi, s.cfg.Kick.Speed))
	}
}

// Step advances the scene by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionKick) {
		s.kick()
	}
	if in.Has(core.ActionSpawn) && len(s.bodies) < s.cfg.Bodies.MaxCount {
		s.spawn()
	}

	for _, b := range s.bodies {
		if b.flash > 0 {
			b.flash--
		}
	}

	s.engine.Update(physics.FixedStep)

	return core.StepResult{State: s.State()}
}

// Render draws the current scene state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	for _, b := range s.bodies {
		if b.flash > 0 {
			scenes.DrawBody(dst, b.proxy, FlashChar, core.ColorBrightWhite)
			continue
		}
		scenes.DrawBody(dst, b.proxy, BodyChar, core.BodyColor(b.proxy.ID))
	}

	stats := s.engine.Stats()
	scenes.DrawHUD(dst,
		fmt.Sprintf("Bounce  bodies:%d  contacts:%d", len(s.bodies), stats.Collisions),
		fmt.Sprintf("%s  tick %d", scenes.ResolverLabel(s.engine), stats.Ticks))

	if s.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
}

// State returns the current scene state. The score is the number of
// body contacts seen so far.
func (s *Scene) State() core.SceneState {
	if s.engine == nil {
		return core.SceneState{Paused: s.paused}
	}
	return core.SceneState{
		Score:  s.engine.Stats().Collisions,
		Paused: s.paused,
		Tick:   s.engine.Tick(),
	}
}

// Engine returns the scene's physics engine.
func (s *Scene) Engine() *physics.Engine {
	return s.engine
}

// Register the scene with the registry
func init() {
	registry.Register(ID, func() registry.Scene {
		return New()
	})
}
