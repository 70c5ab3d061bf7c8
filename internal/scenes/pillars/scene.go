// Package pillars implements a gravity box: boxes fall through a grid of
// static pillars and bounce on the floor.
package pillars

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
const ID = "pillars"

// Visual characters for rendering
const (
	PillarChar = '▒'
	BoxChar    = '█'
)

const (
	windSpeed  = 5.0 // Cells per second added by left/right
	spawnBand  = 0.2 // Fraction of the world height boxes spawn in
	maxSpawnVX = 0.5 // Fraction of max speed used for the initial drift
)

// box is the owner of one falling proxy.
type box struct {
	scene     *Scene
	proxy     *physics.Proxy
	floorHits int
}

// OnWorldCollision implements physics.WorldCollisionHandler.
// A push upwards means the box hit the floor.
func (b *box) OnWorldCollision(d physics.Vector2D) {
	if d.Y < 0 {
		b.floorHits++
		b.scene.floorHits++
	}
}

// Scene implements the pillars gravity box.
type Scene struct {
	cfg      config.PillarsConfig
	fixedCfg bool

	runtime   core.RuntimeConfig
	engine    *physics.Engine
	pillars   []*physics.Proxy
	boxes     []*box
	rng       *rand.Rand
	paused    bool
	floorHits int
}

// New creates a pillars scene that loads its config on Reset.
func New() *Scene {
	return &Scene{cfg: config.DefaultPillarsConfig()}
}

// NewWithConfig creates a pillars scene pinned to cfg.
func NewWithConfig(cfg config.PillarsConfig) *Scene {
	return &Scene{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return ID
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Pillars"
}

// Reset rebuilds the pillar grid and drops the initial boxes.
func (s *Scene) Reset(runtime core.RuntimeConfig) {
	if !s.fixedCfg {
		cfg, err := config.LoadPillars(scenes.ConfigPath(ID))
		if err != nil {
			cfg = config.DefaultPillarsConfig()
		}
		s.cfg = cfg
	}

	s.runtime = runtime
	s.rng = rand.New(rand.NewSource(runtime.Seed))
	s.engine = scenes.MustEngine(scenes.World(runtime), s.cfg.Engine)
	s.pillars = nil
	s.boxes = nil
	s.paused = false
	s.floorHits = 0

	s.buildPillars()
	for range s.cfg.Bodies.Count {
		s.spawn()
	}
}

// buildPillars lays the pillars out on an even grid below the spawn band.
// Odd rows are shifted by half a column.
func (s *Scene) buildPillars() {
	world := s.engine.World()
	p := s.cfg.Pillars
	if p.Columns == 0 || p.Rows == 0 {
		return
	}

	w := math.Min(p.Width, world.Width())
	h := math.Min(p.Height, world.Height())
	top := world.Top() + world.Height()*spawnBand
	colGap := world.Width() / float64(p.Columns+1)
	rowGap := (world.Bottom() - top) / float64(p.Rows+1)

	for row := range p.Rows {
		shift := 0.0
		if row%2 == 1 {
			shift = colGap / 2
		}
		cy := top + rowGap*float64(row+1)
		for col := range p.Columns {
			cx := world.Left() + colGap*float64(col+1) + shift
			r := physics.NewRectCentered(cx, cy, w, h)
			if !world.ContainsRect(r) {
				continue
			}
			added, err := s.engine.Add(physics.NewStaticProxy(r, nil))
			if err != nil {
				continue
			}
			s.pillars = append(s.pillars, added)
		}
	}
}

// spawn drops one box somewhere in the spawn band.
func (s *Scene) spawn() bool {
	world := s.engine.World()
	size := math.Min(s.cfg.Bodies.Size, math.Min(world.Width(), world.Height()))
	band := math.Max(world.Height()*spawnBand-size, 0)

	x := world.Left() + s.rng.Float64()*(world.Width()-size)
	y := world.Top() + s.rng.Float64()*band
	vx := (s.rng.Float64()*2 - 1) * s.cfg.Bodies.MaxSpeed * maxSpawnVX

	owner := &box{scene: s}
	p, err := s.engine.Add(physics.NewProxy(physics.NewRect(x, y, size, size), physics.Vec(vx, 0), owner))
	if err != nil {
		return false
	}
	owner.proxy = p
	s.boxes = append(s.boxes, owner)
	return true
}

// Step advances the scene by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionSpawn) {
		s.spawn()
	}

	var push physics.Vector2D
	if in.Has(core.ActionKick) {
		push.Y = -s.cfg.Bodies.MaxSpeed
	}
	if in.Has(core.ActionLeft) {
		push.X -= windSpeed
	}
	if in.Has(core.ActionRight) {
		push.X += windSpeed
	}

	g := s.cfg.Gravity * physics.FixedStep
	for _, b := range s.boxes {
		v := &b.proxy.Velocity
		v.Add(push)
		v.Y += g
		s.limit(v)
	}

	s.engine.Update(physics.FixedStep)

	return core.StepResult{State: s.State()}
}

// limit caps v at the configured max speed.
func (s *Scene) limit(v *physics.Vector2D) {
	maxSpeed := s.cfg.Bodies.MaxSpeed
	if maxSpeed <= 0 {
		return
	}
	if v.LengthSq() > maxSpeed*maxSpeed {
		v.Normalize().Scale(maxSpeed)
	}
}

// Render draws the current scene state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	for _, p := range s.pillars {
		scenes.DrawBody(dst, p, PillarChar, core.ColorGray)
	}
	for _, b := range s.boxes {
		scenes.DrawBody(dst, b.proxy, BoxChar, core.BodyColor(b.proxy.ID))
	}

	scenes.DrawHUD(dst,
		fmt.Sprintf("Pillars  boxes:%d  floor hits:%d", len(s.boxes), s.floorHits),
		fmt.Sprintf("%s  g=%g  tick %d", scenes.ResolverLabel(s.engine), s.cfg.Gravity, s.engine.Tick()))

	if s.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
}

// State returns the current scene state. The score counts floor hits.
func (s *Scene) State() core.SceneState {
	state := core.SceneState{
		Score:  s.floorHits,
		Paused: s.paused,
	}
	if s.engine != nil {
		state.Tick = s.engine.Tick()
	}
	return state
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
