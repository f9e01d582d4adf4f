package particle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere spreads n points over the surface of a sphere with the given radius
// using a spiral sweep. The polar angle is derived from acos(1-2f) so the density
// is uniform per surface area, and the azimuth advances by sqrt(n*pi) per radian
// of latitude. The result depends only on n and radius.
func Sphere(n int, radius float64) Set {
	if n <= 0 {
		return Set{}
	}
	points := make(Set, n)
	step := math.Sqrt(float64(n) * math.Pi)

	for k := 0; k < n; k++ {
		f := float64(k) / float64(n)
		polar := math.Acos(1 - 2*f)
		azimuth := step * polar

		sinPolar := math.Sin(polar)
		points[k] = r3.Vec{
			X: radius * math.Cos(azimuth) * sinPolar,
			Y: radius * math.Sin(azimuth) * sinPolar,
			Z: radius * math.Cos(polar),
		}
	}
	return points
}
