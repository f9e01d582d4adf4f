// Package camera projects particle positions onto a 2D viewport.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Perspective is a pinhole camera on the positive z axis looking at the origin.
type Perspective struct {
	// FOV is the vertical field of view in degrees.
	FOV      float64
	Distance float64
	Near     float64
	Far      float64
}

// Default matches the original scene: 75 degree fov, 500 units from the sphere.
func Default() Perspective {
	return Perspective{FOV: 75, Distance: 500, Near: 0.1, Far: 2000}
}

// focal returns the projection scale for a viewport of the given height.
func (c Perspective) focal(height float64) float64 {
	return height / 2 / math.Tan(c.FOV*math.Pi/360)
}

// Project maps p onto a width x height viewport with the origin in the top
// left corner. ok is false when p falls outside the near and far planes.
func (c Perspective) Project(p r3.Vec, width, height float64) (x, y float64, ok bool) {
	depth := c.Distance - p.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	f := c.focal(height) / depth
	return width/2 + p.X*f, height/2 - p.Y*f, true
}

// ProjectBuffer projects a flat {x, y, z} buffer and calls fn for every point
// that lands inside the viewport.
func (c Perspective) ProjectBuffer(positions []float64, width, height float64, fn func(i int, x, y float64)) {
	for i := 0; i+2 < len(positions); i += 3 {
		x, y, ok := c.Project(r3.Vec{X: positions[i], Y: positions[i+1], Z: positions[i+2]}, width, height)
		if !ok || x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		fn(i/3, x, y)
	}
}
