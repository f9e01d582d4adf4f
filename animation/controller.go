package animation

import (
	"math"
	"sync/atomic"
)

// Controller holds the spread control state. The target is written by the
// detection side and read by the render side, so it is stored atomically. The
// current value belongs to the render goroutine alone.
type Controller struct {
	target   atomic.Uint64
	current  float64
	smoother Smoother
}

// NewController returns a controller at rest at zero. A nil smoother falls back
// to exponential smoothing with DefaultAlpha.
func NewController(s Smoother) *Controller {
	if s == nil {
		s = Exponential{Alpha: DefaultAlpha}
	}
	return &Controller{smoother: s}
}

// SetTarget stores a new target, clamped to [0, 1].
func (c *Controller) SetTarget(v float64) {
	c.target.Store(math.Float64bits(clamp01(v)))
}

// Target returns the last stored target.
func (c *Controller) Target() float64 {
	return math.Float64frombits(c.target.Load())
}

// Current returns the smoothed spread.
func (c *Controller) Current() float64 {
	return c.current
}

// Reset places the current value without smoothing.
func (c *Controller) Reset(current float64) {
	c.current = clamp01(current)
}

// Step advances the current value one render tick and returns it.
func (c *Controller) Step() float64 {
	c.current = clamp01(c.smoother.Next(c.current, c.Target()))
	return c.current
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
