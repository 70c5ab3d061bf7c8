package physics

import "fmt"

// FixedStep is the simulated time advanced by every Update, in seconds.
// The dt passed to Update is ignored so runs stay reproducible regardless of
// how irregularly the caller's frames arrive.
const FixedStep = 1.0 / 60.0

// Restitution is the coefficient used by the impulse resolver.
const Restitution = 1.0

// Damping is the fraction of velocity removed from both bodies after an
// impulse, so repeated or grazing contacts cannot pump energy into the system.
const Damping = 0.001

// Stats holds counters accumulated since construction or the last Reset.
type Stats struct {
	Ticks           int
	Collisions      int
	WorldCollisions int
}

// Engine owns a set of proxies and advances them one fixed step per Update.
//
// Engine is not safe for concurrent use. Add, Remove, RemoveID and Reset may be
// called from inside collision callbacks; those calls are queued and applied,
// in order, once the running Update finishes.
type Engine struct {
	world  Rect
	simple bool

	proxies    []*Proxy
	collisions []Collision
	nextID     int
	issued     map[int]*Proxy // Every id handed out, kept across Reset
	stats      Stats

	updating bool
	deferred []func()
}

// NewEngine creates an engine confined to world.
// When simple is true every pair uses reflective resolution; otherwise
// dynamic pairs use the mass-weighted impulse resolver.
func NewEngine(world Rect, simple bool) (*Engine, error) {
	if !world.Center.IsFinite() || !world.Size.IsFinite() || world.Size.X <= 0 || world.Size.Y <= 0 {
		return nil, fmt.Errorf("%w: %gx%g at (%g, %g)",
			ErrInvalidWorld, world.Size.X, world.Size.Y, world.Left(), world.Top())
	}
	return &Engine{
		world:  world,
		simple: simple,
		issued: make(map[int]*Proxy),
	}, nil
}

// World returns a copy of the world region.
func (e *Engine) World() Rect {
	return e.world
}

// Simple reports whether the engine uses reflective resolution for all pairs.
func (e *Engine) Simple() bool {
	return e.simple
}

// Tick returns the number of updates run since construction or the last Reset.
func (e *Engine) Tick() int {
	return e.stats.Ticks
}

// Stats returns the accumulated counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Len returns the number of tracked proxies.
func (e *Engine) Len() int {
	return len(e.proxies)
}

// Proxies returns the tracked proxies in iteration order.
// The slice is a copy; the proxies are not.
func (e *Engine) Proxies() []*Proxy {
	out := make([]*Proxy, len(e.proxies))
	copy(out, e.proxies)
	return out
}

// Collisions returns the contacts found by the most recent Update.
func (e *Engine) Collisions() []Collision {
	out := make([]Collision, len(e.collisions))
	copy(out, e.collisions)
	return out
}

// Add registers p and returns it.
// A zero ID is replaced with a fresh one. A preset ID is kept unless the
// engine already handed it to a different proxy, which yields ErrDuplicateID.
// Adding the same proxy twice tracks it twice. During Update the proxy joins
// the set after the tick completes, but its ID is assigned immediately.
func (e *Engine) Add(p *Proxy) (*Proxy, error) {
	if err := e.validate(p); err != nil {
		return nil, err
	}

	if p.ID == 0 {
		e.nextID++
		p.ID = e.nextID
	} else {
		if owner, ok := e.issued[p.ID]; ok && owner != p {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		e.nextID = max(e.nextID, p.ID)
	}
	e.issued[p.ID] = p

	if e.updating {
		e.deferred = append(e.deferred, func() { e.proxies = append(e.proxies, p) })
		return p, nil
	}
	e.proxies = append(e.proxies, p)
	return p, nil
}

// validate enforces the construction-time contract for a proxy.
func (e *Engine) validate(p *Proxy) error {
	if p == nil {
		return ErrNilProxy
	}
	box := p.OuterBox
	if !box.Center.IsFinite() || !box.Size.IsFinite() || box.Size.X < 0 || box.Size.Y < 0 {
		return fmt.Errorf("%w: box %gx%g at (%g, %g)",
			ErrInvalidProxy, box.Size.X, box.Size.Y, box.Center.X, box.Center.Y)
	}
	if !p.Velocity.IsFinite() {
		return fmt.Errorf("%w: velocity (%g, %g)", ErrInvalidProxy, p.Velocity.X, p.Velocity.Y)
	}
	if box.Size.X > e.world.Size.X || box.Size.Y > e.world.Size.Y {
		return fmt.Errorf("%w: %gx%g in %gx%g",
			ErrProxyTooLarge, box.Size.X, box.Size.Y, e.world.Size.X, e.world.Size.Y)
	}
	return nil
}

// Remove drops every entry for p. It is a no-op when p is not tracked.
func (e *Engine) Remove(p *Proxy) {
	if p == nil {
		return
	}
	e.removeWhere(func(q *Proxy) bool { return q == p })
}

// RemoveID drops every proxy with the given id.
func (e *Engine) RemoveID(id int) {
	e.removeWhere(func(q *Proxy) bool { return q.ID == id })
}

func (e *Engine) removeWhere(match func(*Proxy) bool) {
	if e.updating {
		e.deferred = append(e.deferred, func() { e.removeWhere(match) })
		return
	}
	kept := e.proxies[:0]
	for _, q := range e.proxies {
		if !match(q) {
			kept = append(kept, q)
		}
	}
	for i := len(kept); i < len(e.proxies); i++ {
		e.proxies[i] = nil
	}
	e.proxies = kept
}

// Reset drops all proxies, collisions and counters.
// IDs handed out before the reset are never reused.
func (e *Engine) Reset() {
	if e.updating {
		e.deferred = append(e.deferred, e.Reset)
		return
	}
	e.proxies = nil
	e.collisions = nil
	e.stats = Stats{}
}

// Update advances the simulation by one FixedStep. dt is ignored.
func (e *Engine) Update(dt float64) {
	e.updating = true

	e.integrate()
	e.detect()
	e.resolve()
	e.notify()
	e.contain()
	e.stats.Ticks++
	e.stats.Collisions += len(e.collisions)

	e.updating = false
	e.flushDeferred()
}

// flushDeferred applies mutations queued during Update.
func (e *Engine) flushDeferred() {
	pending := e.deferred
	e.deferred = nil
	for _, op := range pending {
		op()
	}
}
