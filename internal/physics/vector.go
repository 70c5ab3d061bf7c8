// Package physics implements a deterministic 2D axis-aligned bounding-box
// engine: fixed-step integration, all-pairs overlap detection, reflective or
// mass-weighted collision response, and containment inside a world region.
//
// The package has no dependency on the terminal platform. It performs no I/O
// and never blocks, so it can be driven by the TUI loop, by headless batch
// runs, or by tests with identical results.
package physics

import "math"

// Vector2D is a mutable 2D vector.
// Mutating methods work in place and return the receiver so calls can be chained:
//
//	v.Add(w).Scale(0.5)
//
// A Vector2D stored inside a Proxy belongs to that proxy; use Clone (or plain
// assignment) to hand out an independent copy.
type Vector2D struct {
	X, Y float64
}

// Vec creates a vector from its components.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// FromAngle creates a vector of the given length pointing at angle (radians).
func FromAngle(angle, length float64) Vector2D {
	return Vector2D{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Set assigns both components.
func (v *Vector2D) Set(x, y float64) *Vector2D {
	v.X = x
	v.Y = y
	return v
}

// Copy assigns the components of o.
func (v *Vector2D) Copy(o Vector2D) *Vector2D {
	v.X = o.X
	v.Y = o.Y
	return v
}

// Add adds o component-wise.
func (v *Vector2D) Add(o Vector2D) *Vector2D {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Sub subtracts o component-wise.
func (v *Vector2D) Sub(o Vector2D) *Vector2D {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Scale multiplies both components by s.
func (v *Vector2D) Scale(s float64) *Vector2D {
	v.X *= s
	v.Y *= s
	return v
}

// Mul multiplies component-wise by o.
func (v *Vector2D) Mul(o Vector2D) *Vector2D {
	v.X *= o.X
	v.Y *= o.Y
	return v
}

// Normalize scales the vector to unit length.
// A zero vector is left unchanged.
func (v *Vector2D) Normalize() *Vector2D {
	l := v.Length()
	if l == 0 {
		return v
	}
	v.X /= l
	v.Y /= l
	return v
}

// Clone returns an independent copy.
func (v Vector2D) Clone() Vector2D {
	return v
}

// Dot returns the dot product with o.
func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LengthSq returns the squared length.
func (v Vector2D) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the Euclidean length.
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// IsZero reports whether both components are zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2D) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// sign returns -1, 0 or 1.
func sign(f float64) float64 {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}
