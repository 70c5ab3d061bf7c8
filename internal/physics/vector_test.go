package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorChaining(t *testing.T) {
	v := Vec(1, 2)
	v.Add(Vec(3, 4)).Scale(2).Sub(Vec(1, 1))

	assert.Equal(t, Vec(7, 11), v)
}

func TestVectorMul(t *testing.T) {
	v := Vec(2, -3)
	v.Mul(Vec(4, 5))

	assert.Equal(t, Vec(8, -15), v)
}

func TestVectorSetAndCopy(t *testing.T) {
	var v Vector2D
	v.Set(3, 4)
	assert.Equal(t, Vec(3, 4), v)

	v.Copy(Vec(-1, 9))
	assert.Equal(t, Vec(-1, 9), v)
}

func TestVectorClone(t *testing.T) {
	v := Vec(1, 1)
	c := v.Clone()
	c.Add(Vec(5, 5))

	assert.Equal(t, Vec(1, 1), v, "clone must not alias the original")
	assert.Equal(t, Vec(6, 6), c)
}

func TestVectorLength(t *testing.T) {
	v := Vec(3, 4)

	assert.Equal(t, 25.0, v.LengthSq())
	assert.Equal(t, 5.0, v.Length())
	assert.Equal(t, 11.0, v.Dot(Vec(1, 2)))
}

func TestVectorNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Vector2D
		expected Vector2D
	}{
		{"axis aligned", Vec(10, 0), Vec(1, 0)},
		{"diagonal", Vec(3, 4), Vec(0.6, 0.8)},
		{"negative", Vec(0, -2), Vec(0, -1)},
		{"zero is a no-op", Vec(0, 0), Vec(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.in
			v.Normalize()
			assert.InDelta(t, tc.expected.X, v.X, 1e-12)
			assert.InDelta(t, tc.expected.Y, v.Y, 1e-12)
			assert.True(t, v.IsFinite())
		})
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 3)

	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 3, v.Y, 1e-12)
}

func TestVectorIsFinite(t *testing.T) {
	assert.True(t, Vec(1, -1).IsFinite())
	assert.False(t, Vec(math.NaN(), 0).IsFinite())
	assert.False(t, Vec(0, math.Inf(-1)).IsFinite())
}
