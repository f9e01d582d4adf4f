package terminal

import (
	"github.com/esimov/ascii-sphere/camera"
	"github.com/esimov/ascii-sphere/gesture"
)

// ramp orders glyphs by how many particles fall into a cell.
const ramp = " .:-=+*#%@"

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2

// rasterize counts the particles projected into each cell of a w x h grid.
// The projection runs on a viewport of w x h*cellAspect so the sphere stays round.
func rasterize(cam camera.Perspective, positions []float64, w, h int, counts []int) []int {
	if cap(counts) < w*h {
		counts = make([]int, w*h)
	}
	counts = counts[:w*h]
	for i := range counts {
		counts[i] = 0
	}
	if w <= 0 || h <= 0 {
		return counts
	}
	cam.ProjectBuffer(positions, float64(w), float64(h*cellAspect), func(_ int, x, y float64) {
		counts[int(y)/cellAspect*w+int(x)]++
	})
	return counts
}

// glyph returns the density character for a particle count.
func glyph(count int) rune {
	if count >= len(ramp) {
		count = len(ramp) - 1
	}
	return rune(ramp[count])
}

// box is a rectangle of cells.
type box struct {
	x, y, w, h int
}

// overlayBox places the hand overlay in the bottom right corner, a quarter of
// the screen wide, keeping the 4:3 camera aspect.
func overlayBox(w, h int) box {
	bw := w / 4
	bh := bw * 3 / 4 / cellAspect
	if bh > h/2 {
		bh = h / 2
		bw = bh * cellAspect * 4 / 3
	}
	return box{x: w - bw - 1, y: h - bh - 1, w: bw, h: bh}
}

// cell maps a normalized landmark into the box.
func (b box) cell(p gesture.Point) (int, int) {
	x := b.x + int(p.X*float64(b.w-1)+0.5)
	y := b.y + int(p.Y*float64(b.h-1)+0.5)
	return x, y
}

// line returns the cells of a straight segment, endpoints included.
func line(x0, y0, x1, y1 int) [][2]int {
	dx, sx := abs(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -abs(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	var cells [][2]int
	for {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
