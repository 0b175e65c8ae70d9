package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, -2, 0.5)
	b := NewVector3(-3, 4, 2)

	assert.Equal(t, NewVector3(-2, 2, 2.5), a.Add(b))
	assert.Equal(t, NewVector3(4, -6, -1.5), a.Sub(b))
	assert.Equal(t, NewVector3(-2, 4, -1), a.Mul(-2))
	assert.Equal(t, NewVector3(-1, 2, -0.5), a.Neg())
	assert.Equal(t, Vector3{}, a.Add(a.Neg()))
	assert.InDelta(t, -10, a.Dot(b), 1e-12)
}

func TestVector3CrossIsOrthogonal(t *testing.T) {
	a := NewVector3(2, 1, 0)
	b := NewVector3(0, 3, 1)
	c := a.Cross(b)

	assert.Equal(t, NewVector3(1, -2, 6), c)
	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
	assert.Equal(t, c.Neg(), b.Cross(a))
}

func TestVector3LengthAndNormalize(t *testing.T) {
	v := NewVector3(0, -6, 8)
	assert.InDelta(t, 10, v.Length(), 1e-12)
	assert.InDelta(t, 10, v.Distance(Vector3{}), 1e-12)

	n := v.Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-12)
	assert.InDelta(t, -0.6, n.Y, 1e-12)

	assert.Equal(t, Vector3{}, Vector3{}.Normalize(), "zero vector stays zero")
}

func TestVector3MinMax(t *testing.T) {
	a := NewVector3(1, 5, -2)
	b := NewVector3(3, -1, -2)

	assert.Equal(t, NewVector3(1, -1, -2), a.Min(b))
	assert.Equal(t, NewVector3(3, 5, -2), a.Max(b))
}
