// Package particle generates the closed and exploded particle configurations
// and blends between them.
package particle

import "gonum.org/v1/gonum/spatial/r3"

// Set is an ordered, index addressable list of particle positions.
// Particle i of one set always pairs with particle i of another set built from it.
type Set []r3.Vec

// Len returns the number of particles in the set.
func (s Set) Len() int {
	return len(s)
}

// Flatten writes the set into dst as consecutive {x, y, z} triples and returns it.
// A new slice is allocated if dst is too short.
func (s Set) Flatten(dst []float64) []float64 {
	if cap(dst) < 3*len(s) {
		dst = make([]float64, 3*len(s))
	}
	dst = dst[:3*len(s)]
	for i, p := range s {
		dst[3*i] = p.X
		dst[3*i+1] = p.Y
		dst[3*i+2] = p.Z
	}
	return dst
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}
