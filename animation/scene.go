// Package animation drives the particle sphere: it owns both particle
// configurations and the spread control state, and exposes one entry point for
// detection results and one for render ticks.
package animation

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/esimov/ascii-sphere/gesture"
	"github.com/esimov/ascii-sphere/particle"
)

// Options configures a Scene.
type Options struct {
	Particles int
	Radius    float64
	Spread    float64
	// Rand seeds the explosion offsets. Nil uses the global source.
	Rand      *rand.Rand
	Smoother  Smoother
	Extractor gesture.Extractor
}

// Snapshot is the state handed to a renderer on every tick. Positions is the
// live buffer: it is valid until the next tick, which overwrites it in place.
type Snapshot struct {
	Positions []float64
	Spread    float64
	Target    float64
	// Hand is the last mirrored landmark frame, nil when no hand is visible.
	Hand *gesture.Frame
}

// Sink consumes snapshots, typically a renderer.
type Sink interface {
	Render(Snapshot) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Snapshot) error

// Render calls f(s).
func (f SinkFunc) Render(s Snapshot) error {
	return f(s)
}

// Scene is the owned animation context.
type Scene struct {
	Closed   particle.Set
	Exploded particle.Set

	ctrl      *Controller
	blender   *particle.Blender
	extractor gesture.Extractor
	buffer    []float64
	hand      atomic.Pointer[gesture.Frame]
}

// NewScene generates the closed and exploded configurations once.
func NewScene(opts Options) *Scene {
	closed := particle.Sphere(opts.Particles, opts.Radius)
	exploded := particle.Explode(closed, opts.Spread, opts.Rand)
	return NewSceneFrom(closed, exploded, opts.Smoother, opts.Extractor)
}

// NewSceneFrom builds a scene over existing configurations. It panics if they
// differ in length. A zero extractor is replaced by gesture.DefaultExtractor.
func NewSceneFrom(closed, exploded particle.Set, s Smoother, e gesture.Extractor) *Scene {
	if e == (gesture.Extractor{}) {
		e = gesture.DefaultExtractor()
	}
	blender := particle.NewBlender(closed, exploded)
	sc := &Scene{
		Closed:    closed,
		Exploded:  exploded,
		ctrl:      NewController(s),
		blender:   blender,
		extractor: e,
		buffer:    blender.Buffer(),
	}
	blender.Blend(0, sc.buffer)
	return sc
}

// Controller exposes the spread control state.
func (sc *Scene) Controller() *Controller {
	return sc.ctrl
}

// OnDetection consumes one detection result. A nil frame means no hand and
// drives the target to zero. A malformed frame is rejected and the previous
// target stays in effect.
func (sc *Scene) OnDetection(f *gesture.Frame) (gesture.Reading, error) {
	r, err := sc.extractor.Extract(f)
	if err != nil {
		return r, err
	}
	sc.ctrl.SetTarget(r.Target)
	if r.Detected {
		sc.hand.Store(&r.Landmarks)
	} else {
		sc.hand.Store(nil)
	}
	return r, nil
}

// Tick advances the spread one step and recomputes the live buffer.
func (sc *Scene) Tick() Snapshot {
	t := sc.ctrl.Step()
	sc.blender.Blend(t, sc.buffer)
	return Snapshot{
		Positions: sc.buffer,
		Spread:    t,
		Target:    sc.ctrl.Target(),
		Hand:      sc.hand.Load(),
	}
}

// Run ticks the scene fps times per second and hands every snapshot to sink.
// It returns when ctx is done or the sink fails.
func (sc *Scene) Run(ctx context.Context, fps int, sink Sink) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sink.Render(sc.Tick()); err != nil {
				return err
			}
		}
	}
}
