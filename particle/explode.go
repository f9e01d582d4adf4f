package particle

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Explode scatters every closed point by an independent offset per axis, each
// drawn uniformly from [-magnitude/2, magnitude/2). The offsets are not radial,
// so the cloud looks scattered rather than like a uniform burst.
//
// A nil rnd draws from the unseeded global source.
func Explode(closed Set, magnitude float64, rnd *rand.Rand) Set {
	offset := rand.Float64
	if rnd != nil {
		offset = rnd.Float64
	}

	exploded := make(Set, len(closed))
	for i, p := range closed {
		exploded[i] = r3.Vec{
			X: p.X + (offset()-0.5)*magnitude,
			Y: p.Y + (offset()-0.5)*magnitude,
			Z: p.Z + (offset()-0.5)*magnitude,
		}
	}
	return exploded
}
