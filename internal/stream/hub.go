package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/registry"
)

const writeWait = 10 * time.Second

// spectatorActions are the only actions a spectator may inject.
var spectatorActions = map[core.Action]bool{
	core.ActionKick:  true,
	core.ActionSpawn: true,
	core.ActionPause: true,
}

// HubConfig configures a Hub.
type HubConfig struct {
	SceneID  string
	Seed     int64
	TickRate int // Ticks per second for Run, defaults to 60
	Logger   *log.Logger

	// Factory overrides the registry lookup of SceneID.
	Factory registry.Factory
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub owns one running scene and the spectators watching it.
// The scene restarts with the next seed when it ends.
type Hub struct {
	scene    registry.Scene
	tickRate int
	logger   *log.Logger
	upgrader websocket.Upgrader

	seed int64 // Touched only by the stepping goroutine

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	last        []byte
	pending     core.InputFrame
}

// NewHub creates the scene and encodes its initial frame.
func NewHub(cfg HubConfig) (*Hub, error) {
	var scene registry.Scene
	if cfg.Factory != nil {
		scene = cfg.Factory()
	} else {
		s, err := registry.Create(cfg.SceneID)
		if err != nil {
			return nil, fmt.Errorf("stream: %w", err)
		}
		scene = s
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	h := &Hub{
		scene:    scene,
		tickRate: tickRate,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		seed:        cfg.Seed,
		subscribers: make(map[*subscriber]struct{}),
		pending:     core.NewInputFrame(),
	}

	scene.Reset(core.HeadlessConfig(h.seed))
	data, err := json.Marshal(NewFrame(scene, h.seed))
	if err != nil {
		return nil, fmt.Errorf("stream: cannot encode frame: %w", err)
	}
	h.last = data
	return h, nil
}

// Run steps the scene at the tick rate until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.tickRate))
	defer ticker.Stop()

	h.logger.Info("Streaming scene", "scene", h.scene.ID(), "seed", h.seed, "tick_rate", h.tickRate)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		case <-ticker.C:
			if err := h.Step(); err != nil {
				return err
			}
		}
	}
}

// Step advances the scene one tick, applying queued spectator actions, and
// broadcasts the resulting frame. It must not be called concurrently.
func (h *Hub) Step() error {
	h.mu.Lock()
	in := h.pending
	h.pending = core.NewInputFrame()
	h.mu.Unlock()

	if h.scene.State().GameOver {
		h.seed++
		h.logger.Info("Scene ended, restarting", "scene", h.scene.ID(), "seed", h.seed)
		h.scene.Reset(core.HeadlessConfig(h.seed))
	}
	h.scene.Step(in)

	data, err := json.Marshal(NewFrame(h.scene, h.seed))
	if err != nil {
		return fmt.Errorf("stream: cannot encode frame: %w", err)
	}

	h.mu.Lock()
	h.last = data
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			h.logger.Warn("Dropping spectator", "remote", sub.conn.RemoteAddr().String(), "error", err)
			h.unsubscribe(sub)
		}
	}
	return nil
}

// Subscribers returns the number of connected spectators.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Handle upgrades the request to a websocket, sends the latest frame and
// then reads spectator actions until the connection closes.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := &subscriber{conn: conn}
	h.mu.Lock()
	initial := h.last
	h.mu.Unlock()

	// The initial frame goes out before the spectator joins the broadcast
	// set, so frames always arrive in tick order.
	if err := sub.write(initial); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("Spectator joined", "remote", conn.RemoteAddr().String())
	defer h.logger.Info("Spectator left", "remote", conn.RemoteAddr().String())

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.unsubscribe(sub)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Debug("Discarding malformed message", "remote", conn.RemoteAddr().String(), "error", err)
			continue
		}
		h.queue(msg)
	}
}

// queue records a spectator action for the next tick.
// It reports whether the message was accepted.
func (h *Hub) queue(msg clientMessage) bool {
	if msg.Type != "input" {
		return false
	}
	action, ok := core.ParseAction(msg.Action)
	if !ok || !spectatorActions[action] {
		return false
	}

	h.mu.Lock()
	h.pending.Set(action)
	h.mu.Unlock()
	return true
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[sub]
	delete(h.subscribers, sub)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[*subscriber]struct{})
	h.mu.Unlock()

	message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream stopped")
	for sub := range subs {
		sub.mu.Lock()
		sub.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait)) //nolint:errcheck // Best-effort goodbye
		sub.mu.Unlock()
		sub.conn.Close()
	}
}
