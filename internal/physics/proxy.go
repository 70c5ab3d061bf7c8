package physics

// CollisionHandler is implemented by proxy owners that want to hear about
// contacts with other proxies.
type CollisionHandler interface {
	OnCollision(other *Proxy, c *Collision)
}

// WorldCollisionHandler is implemented by proxy owners that want to hear
// when the engine pushes them back inside the world region.
// distance is the correction that was applied to the box center.
type WorldCollisionHandler interface {
	OnWorldCollision(distance Vector2D)
}

// Proxy is the engine's view of one entity: a box, its velocity and a
// non-owning reference back to whatever owns it.
//
// The engine mutates OuterBox and Velocity during Update. Between updates the
// owner may read both and write Velocity (e.g. from input).
type Proxy struct {
	ID       int
	OuterBox Rect
	Velocity Vector2D
	Static   bool

	// Owner receives callbacks when it implements CollisionHandler or
	// WorldCollisionHandler. It may be nil.
	Owner any
}

// NewProxy creates a dynamic proxy.
func NewProxy(box Rect, velocity Vector2D, owner any) *Proxy {
	return &Proxy{
		OuterBox: box,
		Velocity: velocity,
		Owner:    owner,
	}
}

// NewStaticProxy creates an immovable proxy.
func NewStaticProxy(box Rect, owner any) *Proxy {
	return &Proxy{
		OuterBox: box,
		Static:   true,
		Owner:    owner,
	}
}

// Box returns a copy of the proxy's box.
func (p *Proxy) Box() Rect {
	return p.OuterBox
}

// Mass returns the box area. There is no density.
func (p *Proxy) Mass() float64 {
	return p.OuterBox.Area()
}

func (p *Proxy) notifyCollision(other *Proxy, c *Collision) {
	if h, ok := p.Owner.(CollisionHandler); ok {
		h.OnCollision(other, c)
	}
}

func (p *Proxy) notifyWorldCollision(distance Vector2D) {
	if h, ok := p.Owner.(WorldCollisionHandler); ok {
		h.OnWorldCollision(distance)
	}
}

// Collision records one overlapping pair found during the current tick.
// Overlap is the intersection measured at detection time, before resolution.
type Collision struct {
	Overlap Rect
	A, B    *Proxy
}

// Other returns the participant that is not p.
func (c *Collision) Other(p *Proxy) *Proxy {
	if c.A == p {
		return c.B
	}
	return c.A
}
