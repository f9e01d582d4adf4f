package animation

import "github.com/charmbracelet/harmonica"

// DefaultAlpha is the per tick smoothing factor of the exponential smoother.
const DefaultAlpha = 0.1

// Smoother advances the current spread one render tick toward a target.
type Smoother interface {
	Next(current, target float64) float64
}

// Exponential is a one-pole low-pass filter: every tick closes a fixed fraction
// Alpha of the remaining gap. For a constant target it converges geometrically
// and never overshoots.
type Exponential struct {
	Alpha float64
}

// Next implements Smoother.
func (e Exponential) Next(current, target float64) float64 {
	return current + (target-current)*e.Alpha
}

// Spring eases the spread with a damped harmonic oscillator. With a damping
// ratio of 1 or more it settles without overshooting.
type Spring struct {
	spring   harmonica.Spring
	velocity float64
}

// NewSpring creates a spring smoother stepping at fps ticks per second.
func NewSpring(fps int, frequency, damping float64) *Spring {
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Next implements Smoother.
func (s *Spring) Next(current, target float64) float64 {
	var pos float64
	pos, s.velocity = s.spring.Update(current, s.velocity, target)
	return pos
}
