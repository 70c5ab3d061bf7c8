package physics

import "math"

// axis selects the separating axis of a contact.
type axis int

const (
	axisX axis = iota
	axisY
)

// integrate moves every dynamic proxy by one step of its velocity.
func (e *Engine) integrate() {
	for _, p := range e.proxies {
		if p.Static {
			continue
		}
		step := p.Velocity
		p.OuterBox.Center.Add(*step.Scale(FixedStep))
	}
}

// detect rebuilds the collision list with an all-pairs scan.
// Pairs are visited in insertion order, so the list is reproducible.
func (e *Engine) detect() {
	e.collisions = e.collisions[:0]
	for i := 0; i < len(e.proxies); i++ {
		a := e.proxies[i]
		for j := i + 1; j < len(e.proxies); j++ {
			b := e.proxies[j]
			if a == b {
				continue
			}
			ov := a.OuterBox.Overlap(b.OuterBox)
			if ov.Size.X <= 0 || ov.Size.Y <= 0 {
				continue
			}
			e.collisions = append(e.collisions, Collision{Overlap: ov, A: a, B: b})
		}
	}
}

// resolve separates every colliding pair found by detect. A pair already
// pushed apart by an earlier pair of the same tick is left alone.
func (e *Engine) resolve() {
	for i := range e.collisions {
		c := &e.collisions[i]
		if !c.A.OuterBox.Intersects(c.B.OuterBox) {
			continue
		}
		if e.simple || !resolveImpulse(c) {
			resolveSimple(c)
		}
	}
}

// notify invokes the owners' collision callbacks, twice per pair.
func (e *Engine) notify() {
	for i := range e.collisions {
		c := &e.collisions[i]
		c.A.notifyCollision(c.B, c)
		c.B.notifyCollision(c.A, c)
	}
}

// contain pushes dynamic proxies that left the world back inside it.
func (e *Engine) contain() {
	for _, p := range e.proxies {
		if p.Static {
			continue
		}
		half := p.OuterBox.Size
		legal := e.world.Inset(*half.Scale(0.5))
		d := pointRect(p.OuterBox.Center).Distance(legal)
		if d.IsZero() {
			continue
		}
		if d.X != 0 {
			p.Velocity.X = sign(d.X) * math.Abs(p.Velocity.X)
		}
		if d.Y != 0 {
			p.Velocity.Y = sign(d.Y) * math.Abs(p.Velocity.Y)
		}
		p.OuterBox.Center.Add(d)
		e.stats.WorldCollisions++
		p.notifyWorldCollision(d)
	}
}

// dominantAxis returns the axis along which the overlap is thinnest.
func dominantAxis(ov Rect) axis {
	if ov.Size.X < ov.Size.Y {
		return axisX
	}
	return axisY
}

// awaySigns returns the direction each participant must move along ax to
// separate. Exactly aligned centers push A negative and B positive.
func awaySigns(a, b *Proxy, ax axis) (sa, sb float64) {
	var ca, cb float64
	if ax == axisX {
		ca, cb = a.OuterBox.Center.X, b.OuterBox.Center.X
	} else {
		ca, cb = a.OuterBox.Center.Y, b.OuterBox.Center.Y
	}
	if ca > cb {
		return 1, -1
	}
	return -1, 1
}

// penetration returns how far the pair must move apart along ax to stop
// overlapping. For partially overlapping boxes this is the overlap extent on
// ax; when one box spans the other on that axis it is larger.
func penetration(a, b *Proxy, ax axis) float64 {
	if ax == axisX {
		return (a.OuterBox.Size.X+b.OuterBox.Size.X)/2 - math.Abs(a.OuterBox.Center.X-b.OuterBox.Center.X)
	}
	return (a.OuterBox.Size.Y+b.OuterBox.Size.Y)/2 - math.Abs(a.OuterBox.Center.Y-b.OuterBox.Center.Y)
}

// resolveSimple reflects and separates a pair along its dominant axis.
func resolveSimple(c *Collision) {
	separate(c, true)
}

// separate moves the dynamic participants of c apart along the dominant axis.
// A dynamic body facing a static one absorbs the whole penetration. When
// reflect is set the velocity component on that axis is turned to point away
// from the partner.
func separate(c *Collision, reflect bool) {
	a, b := c.A, c.B
	if a.Static && b.Static {
		return
	}
	ax := dominantAxis(c.Overlap)
	depth := penetration(a, b, ax)
	if depth <= 0 {
		return
	}
	sa, sb := awaySigns(a, b, ax)

	shift := depth / 2
	if a.Static || b.Static {
		shift = depth
	}
	if !a.Static {
		push(a, ax, sa, shift, reflect)
	}
	if !b.Static {
		push(b, ax, sb, shift, reflect)
	}
}

// push translates p by dir*shift along ax and optionally reflects its velocity.
func push(p *Proxy, ax axis, dir, shift float64, reflect bool) {
	if ax == axisX {
		p.OuterBox.Center.X += dir * shift
		if reflect {
			p.Velocity.X = dir * math.Abs(p.Velocity.X)
		}
		return
	}
	p.OuterBox.Center.Y += dir * shift
	if reflect {
		p.Velocity.Y = dir * math.Abs(p.Velocity.Y)
	}
}

// resolveImpulse exchanges momentum along the line between the centers, then
// separates the pair. It reports false without touching the pair when the
// contact is not eligible (a static body, zero mass, coincident centers, or a
// non-finite result) so the caller can fall back to resolveSimple.
func resolveImpulse(c *Collision) bool {
	a, b := c.A, c.B
	if a.Static || b.Static {
		return false
	}
	ma, mb := a.Mass(), b.Mass()
	if ma <= 0 || mb <= 0 {
		return false
	}

	n := b.OuterBox.Center
	n.Sub(a.OuterBox.Center)
	if n.IsZero() {
		return false
	}
	n.Normalize()

	va, vb := a.Velocity, b.Velocity
	rel := va.Dot(n) - vb.Dot(n)
	if rel > 0 {
		j := (1 + Restitution) * rel / (1/ma + 1/mb)
		da, db := n, n
		va.Sub(*da.Scale(j / ma)).Scale(1 - Damping)
		vb.Add(*db.Scale(j / mb)).Scale(1 - Damping)
		if !va.IsFinite() || !vb.IsFinite() {
			return false
		}
		a.Velocity = va
		b.Velocity = vb
	}

	separate(c, false)
	return true
}
