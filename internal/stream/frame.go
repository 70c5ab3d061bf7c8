// Package stream broadcasts a headless scene to websocket spectators as a
// sequence of JSON state frames.
package stream

import (
	"fmt"

	"github.com/vovakirdan/boxsim/internal/physics"
	"github.com/vovakirdan/boxsim/internal/registry"
)

// ProtocolVersion is sent with every frame.
const ProtocolVersion = 1

// Box is a rectangle in world cells, top-left anchored.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Body is one proxy as seen by a spectator.
type Body struct {
	ID     int     `json:"id"`
	Box    Box     `json:"box"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Static bool    `json:"static,omitempty"`
}

// Frame is the state message pushed after every tick.
type Frame struct {
	Ver             int    `json:"ver"`
	Type            string `json:"type"`
	Scene           string `json:"scene"`
	Seed            int64  `json:"seed"`
	Tick            int    `json:"tick"`
	Score           int    `json:"score"`
	GameOver        bool   `json:"gameOver,omitempty"`
	Collisions      int    `json:"collisions"`
	WorldCollisions int    `json:"worldCollisions"`
	Hash            string `json:"hash"`
	World           Box    `json:"world"`
	Bodies          []Body `json:"bodies"`
}

// clientMessage is what spectators may send: a single action to feed into
// the next tick.
type clientMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

func box(r physics.Rect) Box {
	return Box{X: r.Left(), Y: r.Top(), W: r.Width(), H: r.Height()}
}

// NewFrame captures the current state of scene.
func NewFrame(scene registry.Scene, seed int64) Frame {
	e := scene.Engine()
	state := scene.State()
	snap := e.Snapshot()
	stats := e.Stats()

	bodies := make([]Body, 0, e.Len())
	for _, p := range e.Proxies() {
		bodies = append(bodies, Body{
			ID:     p.ID,
			Box:    box(p.OuterBox),
			VX:     p.Velocity.X,
			VY:     p.Velocity.Y,
			Static: p.Static,
		})
	}

	return Frame{
		Ver:             ProtocolVersion,
		Type:            "state",
		Scene:           scene.ID(),
		Seed:            seed,
		Tick:            e.Tick(),
		Score:           state.Score,
		GameOver:        state.GameOver,
		Collisions:      stats.Collisions,
		WorldCollisions: stats.WorldCollisions,
		Hash:            fmt.Sprintf("%016x", snap.Hash()),
		World:           box(e.World()),
		Bodies:          bodies,
	}
}
