// Package pong implements Pong on top of the physics engine.
// Player 1 controls the left paddle, the CPU controls the right one.
// Paddles are static bodies moved between ticks; the ball is the only
// dynamic body and points are scored when the world pushes it back from a
// side wall.
package pong

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
const ID = "pong"

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

const (
	serveAngle = 0.6 // Full width of the random serve angle, radians
	spinFactor = 0.6 // Vertical speed added at the paddle tips, relative to ball speed
	maxSlope   = 0.7 // Largest |vy|/speed after spin
)

// ball is the owner of the ball proxy.
type ball struct {
	scene *Scene
}

// OnCollision implements physics.CollisionHandler.
func (b *ball) OnCollision(other *physics.Proxy, _ *physics.Collision) {
	s := b.scene
	switch other {
	case s.paddle1:
		s.returnBall(other, 1)
	case s.paddle2:
		s.returnBall(other, -1)
	}
}

// OnWorldCollision implements physics.WorldCollisionHandler.
// A push to the right means the ball reached the left wall.
func (b *ball) OnWorldCollision(d physics.Vector2D) {
	s := b.scene
	if s.serving {
		return
	}
	switch {
	case d.X > 0:
		s.point = 2
	case d.X < 0:
		s.point = 1
	}
}

// Scene implements the Pong game logic.
type Scene struct {
	cfg      config.PongConfig
	fixedCfg bool
	ramp     *config.Ramp

	runtime core.RuntimeConfig
	engine  *physics.Engine
	paddle1 *physics.Proxy // Player 1 (left)
	paddle2 *physics.Proxy // CPU (right)
	ball    *physics.Proxy
	rng     *rand.Rand

	// Scores
	score1 int
	score2 int

	// Game state
	gameOver   bool
	paused     bool
	winner     int  // 1 or 2
	serving    bool // True when waiting to serve
	serveDelay int  // Ticks to wait before serving
	serveDir   float64
	point      int // Side that scored during the current tick, 0 for none
	rallies    int
}

// New creates a Pong scene that loads its config on Reset.
func New() *Scene {
	return &Scene{cfg: config.DefaultPongConfig()}
}

// NewWithConfig creates a Pong scene pinned to cfg.
func NewWithConfig(cfg config.PongConfig) *Scene {
	return &Scene{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return ID
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Pong"
}

// Reset initializes or restarts the game.
func (s *Scene) Reset(runtime core.RuntimeConfig) {
	if !s.fixedCfg {
		cfg, err := config.LoadPong(scenes.ConfigPath(ID))
		if err != nil {
			cfg = config.DefaultPongConfig()
		}
		s.cfg = cfg
	}

	s.runtime = runtime
	s.rng = rand.New(rand.NewSource(runtime.Seed))
	s.ramp = config.NewRamp(s.cfg.Ramp)

	world := scenes.World(runtime)
	s.engine = scenes.MustEngine(world, s.cfg.Engine)

	pw := math.Min(s.cfg.Paddles.Width, world.Width()/4)
	ph := math.Min(s.cfg.Paddles.Height, world.Height())
	top := world.Center.Y - ph/2
	s.paddle1 = s.mustAdd(physics.NewStaticProxy(
		physics.NewRect(world.Left()+s.cfg.Paddles.Offset, top, pw, ph), nil))
	s.paddle2 = s.mustAdd(physics.NewStaticProxy(
		physics.NewRect(world.Right()-s.cfg.Paddles.Offset-pw, top, pw, ph), nil))

	size := math.Min(s.cfg.Ball.Size, ph)
	s.ball = s.mustAdd(physics.NewProxy(
		physics.NewRectCentered(world.Center.X, world.Center.Y, size, size),
		physics.Vector2D{}, &ball{scene: s}))

	s.score1 = 0
	s.score2 = 0
	s.gameOver = false
	s.paused = false
	s.winner = 0
	s.point = 0
	s.rallies = 0

	// Start with serve
	s.startServe(1)
}

// mustAdd adds a proxy that was sized to fit the world.
func (s *Scene) mustAdd(p *physics.Proxy) *physics.Proxy {
	added, err := s.engine.Add(p)
	if err != nil {
		panic(fmt.Sprintf("pong: %v", err))
	}
	return added
}

// startServe centers the ball and holds it until the serve delay runs out.
func (s *Scene) startServe(server int) {
	s.serving = true
	s.serveDelay = s.cfg.Gameplay.ServeDelay

	world := s.engine.World()
	s.ball.OuterBox.Center.Copy(world.Center)
	s.ball.Velocity.Set(0, 0)

	if server == 1 {
		s.serveDir = -1
	} else {
		s.serveDir = 1
	}
}

// release launches the ball at the current ramped speed.
func (s *Scene) release() {
	s.serving = false
	angle := (s.rng.Float64() - 0.5) * serveAngle
	v := physics.FromAngle(angle, s.ballSpeed())
	v.X *= s.serveDir
	s.ball.Velocity.Copy(v)
}

// ballSpeed returns the serve speed scaled by the ramp and capped.
func (s *Scene) ballSpeed() float64 {
	speed := s.ramp.Speed(s.cfg.Ball.Speed, s.score1+s.score2, s.engine.Tick())
	return math.Min(speed, s.cfg.Ball.MaxSpeed)
}

// returnBall sends the ball away from paddle along dir, adding spin based on
// where it hit.
func (s *Scene) returnBall(paddle *physics.Proxy, dir float64) {
	s.rallies++
	speed := s.ballSpeed()

	box := paddle.OuterBox
	hitPos := core.ClampF((s.ball.OuterBox.Center.Y-box.Top())/box.Height(), 0, 1)
	vy := s.ball.Velocity.Y + (hitPos-0.5)*spinFactor*speed
	vy = core.ClampF(vy, -maxSlope*speed, maxSlope*speed)
	vx := math.Sqrt(speed*speed - vy*vy)

	s.ball.Velocity.Set(dir*vx, vy)
}

// Step advances the game by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.gameOver {
		return core.StepResult{State: s.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	// Handle serve delay
	if s.serving {
		s.serveDelay--
		if s.serveDelay <= 0 {
			s.release()
		}
	}

	speed := s.cfg.Paddles.Speed
	if in.Has(core.ActionUp) {
		s.movePaddle(s.paddle1, -speed)
	}
	if in.Has(core.ActionDown) {
		s.movePaddle(s.paddle1, speed)
	}
	s.updateCPU()

	s.engine.Update(physics.FixedStep)

	if s.point != 0 {
		s.award(s.point)
		s.point = 0
	}

	return core.StepResult{State: s.State()}
}

// movePaddle shifts a paddle vertically, keeping it inside the world.
func (s *Scene) movePaddle(p *physics.Proxy, dy float64) {
	world := s.engine.World()
	half := p.OuterBox.Height() / 2
	p.OuterBox.Center.Y = core.ClampF(p.OuterBox.Center.Y+dy, world.Top()+half, world.Bottom()-half)
}

// updateCPU tracks the ball with the right paddle while it approaches.
func (s *Scene) updateCPU() {
	if s.ball.Velocity.X <= 0 {
		return
	}
	diff := s.ball.OuterBox.Center.Y - s.paddle2.OuterBox.Center.Y
	moveSpeed := s.cfg.Paddles.Speed * s.cfg.CPU.Skill
	if math.Abs(diff) > moveSpeed {
		s.movePaddle(s.paddle2, math.Copysign(moveSpeed, diff))
	}
}

// award records a point and either ends the game or serves again.
func (s *Scene) award(side int) {
	if side == 1 {
		s.score1++
		if s.score1 >= s.cfg.Gameplay.WinScore {
			s.gameOver = true
			s.winner = 1
		}
	} else {
		s.score2++
		if s.score2 >= s.cfg.Gameplay.WinScore {
			s.gameOver = true
			s.winner = 2
		}
	}
	s.startServe(side)
}

// Render draws the current game state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	// Draw center line (net)
	centerX := dst.Width() / 2
	for y := scenes.HUDRows; y < dst.Height(); y += 2 {
		dst.SetColored(centerX, y, NetChar, core.ColorGray)
	}

	scenes.DrawBody(dst, s.paddle1, PaddleChar, core.ColorCyan)
	scenes.DrawBody(dst, s.paddle2, PaddleChar, core.ColorMagenta)

	// Blink during serve
	if !s.serving || (s.serveDelay/10)%2 == 0 {
		scenes.DrawBody(dst, s.ball, BallChar, core.ColorBrightWhite)
	}

	scenes.DrawHUD(dst, "P1", "CPU")
	dst.DrawTextCentered(0, fmt.Sprintf("%d  -  %d", s.score1, s.score2))

	if s.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}

	if s.gameOver {
		msg := "CPU WINS!"
		if s.winner == 1 {
			msg = "YOU WIN!"
		}
		dst.DrawMessage(msg, fmt.Sprintf("%d - %d  |  Press R to restart", s.score1, s.score2))
	}
}

// State returns the current game state.
func (s *Scene) State() core.SceneState {
	state := core.SceneState{
		Score:    s.score1, // Report player's score
		GameOver: s.gameOver,
		Paused:   s.paused,
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
