package particle

import "fmt"

// Blender interpolates between a closed and an exploded configuration.
type Blender struct {
	closed   []float64
	exploded []float64
}

// NewBlender pairs the two configurations. Both must come from the same particle
// count; a mismatch is a programming error and panics.
func NewBlender(closed, exploded Set) *Blender {
	if len(closed) != len(exploded) {
		panic(fmt.Sprintf("particle: closed set has %d points, exploded set has %d", len(closed), len(exploded)))
	}
	return &Blender{
		closed:   closed.Flatten(nil),
		exploded: exploded.Flatten(nil),
	}
}

// Len returns the number of particles.
func (b *Blender) Len() int {
	return len(b.closed) / 3
}

// Buffer allocates a position buffer sized for Blend.
func (b *Blender) Buffer() []float64 {
	return make([]float64, len(b.closed))
}

// Blend overwrites dst with the positions at spread t, where 0 is the closed
// sphere and 1 the exploded cloud. Both endpoints are reproduced exactly.
func (b *Blender) Blend(t float64, dst []float64) {
	if len(dst) != len(b.closed) {
		panic(fmt.Sprintf("particle: buffer has %d scalars, want %d", len(dst), len(b.closed)))
	}
	s := 1 - t
	for i, c := range b.closed {
		dst[i] = c*s + b.exploded[i]*t
	}
}
