package bounce

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/boxsim/internal/config"
	"github.com/vovakirdan/boxsim/internal/core"
)

const eps = 1e-9

func newScene(t *testing.T, mutate func(*config.BounceConfig)) *Scene {
	t.Helper()
	cfg := config.DefaultBounceConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())
	s := NewWithConfig(cfg)
	s.Reset(core.HeadlessConfig(12345))
	return s
}

func TestSceneDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%50 == 10 {
			inputs[i].Set(core.ActionKick)
		}
		if i%75 == 20 {
			inputs[i].Set(core.ActionSpawn)
		}
	}

	run := func() uint64 {
		s := newScene(t, nil)
		for _, in := range inputs {
			s.Step(in)
		}
		return s.Engine().Snapshot().Hash()
	}

	h1, h2 := run(), run()
	if h1 != h2 {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", h1, h2)
	}
}

func TestResetSpawnsConfiguredBodies(t *testing.T) {
	s := newScene(t, func(c *config.BounceConfig) { c.Bodies.Count = 7 })

	assert.Equal(t, 7, s.Engine().Len())
	assert.Len(t, s.bodies, 7)
	assert.Equal(t, 0, s.State().Tick)
}

func TestBodiesStayInsideWorld(t *testing.T) {
	s := newScene(t, func(c *config.BounceConfig) { c.Bodies.Count = 20 })
	world := s.Engine().World()

	for range 600 {
		s.Step(core.NewInputFrame())
	}

	for _, p := range s.Engine().Proxies() {
		box := p.OuterBox
		assert.GreaterOrEqual(t, box.Left(), world.Left()-eps, "body %d left", p.ID)
		assert.LessOrEqual(t, box.Right(), world.Right()+eps, "body %d right", p.ID)
		assert.GreaterOrEqual(t, box.Top(), world.Top()-eps, "body %d top", p.ID)
		assert.LessOrEqual(t, box.Bottom(), world.Bottom()+eps, "body %d bottom", p.ID)
	}
}

func TestContactsFlashBodies(t *testing.T) {
	s := newScene(t, func(c *config.BounceConfig) {
		c.Bodies.Count = 30
		c.Bodies.MaxCount = 30
	})

	flashed := false
	for range 600 {
		s.Step(core.NewInputFrame())
		for _, b := range s.bodies {
			if b.flash > 0 {
				flashed = true
			}
		}
	}

	assert.True(t, flashed, "crowded world should produce at least one contact")
	assert.Positive(t, s.State().Score)

	hits := 0
	for _, b := range s.bodies {
		hits += b.hits
	}
	assert.Equal(t, 2*s.State().Score, hits, "every contact notifies both bodies")
}

func TestSpawnRespectsMaxCount(t *testing.T) {
	s := newScene(t, func(c *config.BounceConfig) {
		c.Bodies.Count = 2
		c.Bodies.MaxCount = 3
	})

	spawn := core.NewInputFrame()
	spawn.Set(core.ActionSpawn)
	for range 5 {
		s.Step(spawn)
	}

	assert.Equal(t, 3, s.Engine().Len())
}

func TestKickChangesVelocities(t *testing.T) {
	plain := newScene(t, nil)
	kicked := newScene(t, nil)

	kick := core.NewInputFrame()
	kick.Set(core.ActionKick)
	plain.Step(core.NewInputFrame())
	kicked.Step(kick)

	assert.NotEqual(t, plain.Engine().Snapshot().Hash(), kicked.Engine().Snapshot().Hash())
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newScene(t, nil)
	s.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)
	require.True(t, s.State().Paused)

	frozen := s.Engine().Snapshot().Hash()
	for range 10 {
		s.Step(core.NewInputFrame())
	}
	assert.Equal(t, frozen, s.Engine().Snapshot().Hash())
	assert.Equal(t, 1, s.State().Tick)

	s.Step(pause)
	assert.False(t, s.State().Paused)
	assert.Equal(t, 2, s.State().Tick)
}

func TestRenderDrawsHUDAndBodies(t *testing.T) {
	s := newScene(t, nil)
	screen := core.NewScreen(80, 24)
	s.Render(screen)

	if !strings.HasPrefix(strings.TrimSpace(screen.Row(0)), "Bounce") {
		t.Errorf("Row(0) = %q, expected the HUD", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), BodyChar) {
		t.Error("Render() drew no bodies")
	}
}

func TestOversizeBodiesAreClampedToWorld(t *testing.T) {
	s := newScene(t, func(c *config.BounceConfig) {
		c.Bodies.Count = 3
		c.Bodies.MinSize = 100
		c.Bodies.MaxSize = 200
	})

	assert.Equal(t, 3, s.Engine().Len())
}
