package pillars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/boxsim/internal/config"
	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/physics"
)

const eps = 1e-9

func newScene(t *testing.T, mutate func(*config.PillarsConfig)) *Scene {
	t.Helper()
	cfg := config.DefaultPillarsConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())
	s := NewWithConfig(cfg)
	s.Reset(core.HeadlessConfig(7))
	return s
}

func TestSceneDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%120 == 60:
			inputs[i].Set(core.ActionKick)
		case i%90 < 20:
			inputs[i].Set(core.ActionLeft)
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

func TestResetBuildsPillarGrid(t *testing.T) {
	s := newScene(t, nil)

	assert.Len(t, s.pillars, 12)
	assert.Len(t, s.boxes, 10)
	assert.Equal(t, 22, s.Engine().Len())
	for _, p := range s.pillars {
		assert.True(t, p.Static)
		assert.True(t, s.Engine().World().ContainsRect(p.OuterBox))
	}
}

func TestEmptyGrid(t *testing.T) {
	s := newScene(t, func(c *config.PillarsConfig) { c.Pillars.Columns = 0 })

	assert.Empty(t, s.pillars)
	assert.Equal(t, 10, s.Engine().Len())
}

func TestPillarsNeverMove(t *testing.T) {
	s := newScene(t, nil)
	centers := make(map[int]physics.Vector2D)
	for _, p := range s.pillars {
		centers[p.ID] = p.OuterBox.Center
	}

	for range 600 {
		s.Step(core.NewInputFrame())
	}

	for _, p := range s.pillars {
		assert.Equal(t, centers[p.ID], p.OuterBox.Center, "pillar %d moved", p.ID)
		assert.True(t, p.Velocity.IsZero())
	}
}

func TestGravityPullsBoxesToTheFloor(t *testing.T) {
	s := newScene(t, func(c *config.PillarsConfig) { c.Pillars.Rows = 0 })
	world := s.Engine().World()

	for range 600 {
		s.Step(core.NewInputFrame())
	}

	assert.Positive(t, s.State().Score, "boxes should reach the floor")
	for _, b := range s.boxes {
		box := b.proxy.OuterBox
		assert.LessOrEqual(t, box.Bottom(), world.Bottom()+eps)
		assert.GreaterOrEqual(t, box.Top(), world.Top()-eps)
	}

	hits := 0
	for _, b := range s.boxes {
		hits += b.floorHits
	}
	assert.Equal(t, s.State().Score, hits)
}

func TestZeroGravityKeepsBoxesInBand(t *testing.T) {
	s := newScene(t, func(c *config.PillarsConfig) {
		c.Gravity = 0
		c.Bodies.MaxSpeed = 0
	})

	for range 120 {
		s.Step(core.NewInputFrame())
	}
	assert.Equal(t, 0, s.State().Score)
}

func TestKickAndSpawn(t *testing.T) {
	s := newScene(t, nil)
	for range 30 {
		s.Step(core.NewInputFrame())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionKick)
	in.Set(core.ActionSpawn)
	s.Step(in)

	assert.Len(t, s.boxes, 11)
	sum := 0.0
	for _, b := range s.boxes[:10] {
		sum += b.proxy.Velocity.Y
	}
	assert.Negative(t, sum, "kick should send the boxes upwards")
}

func TestRenderDrawsPillars(t *testing.T) {
	s := newScene(t, nil)
	screen := core.NewScreen(80, 24)
	s.Render(screen)

	found := false
	for y := range screen.Height() {
		for x := range screen.Width() {
			if screen.Get(x, y) == PillarChar {
				found = true
			}
		}
	}
	assert.True(t, found, "Render() drew no pillars")
}
