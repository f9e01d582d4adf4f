package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendEndpoints(t *testing.T) {
	closed := Sphere(1000, 150)
	exploded := Explode(closed, 600, nil)
	b := NewBlender(closed, exploded)
	require.Equal(t, 1000, b.Len())

	buf := b.Buffer()

	b.Blend(0, buf)
	assert.Equal(t, closed.Flatten(nil), buf)

	b.Blend(1, buf)
	assert.Equal(t, exploded.Flatten(nil), buf)
}

func TestBlendMidpoint(t *testing.T) {
	closed := Set{{X: 0, Y: -2, Z: 10}, {X: 1, Y: 1, Z: 1}}
	exploded := Set{{X: 4, Y: 2, Z: -10}, {X: 3, Y: 0, Z: 1}}
	b := NewBlender(closed, exploded)

	buf := b.Buffer()
	b.Blend(0.5, buf)
	assert.Equal(t, []float64{2, 0, 0, 2, 0.5, 1}, buf)
}

func TestBlendOverwrites(t *testing.T) {
	closed := Sphere(10, 1)
	b := NewBlender(closed, Explode(closed, 5, nil))

	buf := b.Buffer()
	b.Blend(1, buf)
	b.Blend(0, buf)
	assert.Equal(t, closed.Flatten(nil), buf)
}

func TestBlendContinuous(t *testing.T) {
	closed := Sphere(200, 150)
	b := NewBlender(closed, Explode(closed, 600, nil))

	prev := b.Buffer()
	next := b.Buffer()
	b.Blend(0, prev)
	for step := 1; step <= 100; step++ {
		b.Blend(float64(step)/100, next)
		for i := range prev {
			// Offsets are at most 300 per axis, so a 1% step moves at most 3 units.
			assert.LessOrEqual(t, abs(next[i]-prev[i]), 3.0+1e-9)
		}
		prev, next = next, prev
	}
}

func TestNewBlenderLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewBlender(Sphere(10, 1), Sphere(11, 1))
	})
}

func TestBlendBufferMismatch(t *testing.T) {
	closed := Sphere(10, 1)
	b := NewBlender(closed, closed)
	assert.Panics(t, func() {
		b.Blend(0.5, make([]float64, 29))
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
