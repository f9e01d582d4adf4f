package animation

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/ascii-sphere/gesture"
)

func newTestScene() *Scene {
	return NewScene(Options{
		Particles: 300,
		Radius:    150,
		Spread:    600,
		Rand:      rand.New(rand.NewPCG(7, 11)),
	})
}

// pinch returns a full hand with the fingertips d apart vertically.
func pinch(d float64) *gesture.Frame {
	f := &gesture.Frame{Points: make([]gesture.Point, gesture.NumLandmarks)}
	for i := range f.Points {
		f.Points[i] = gesture.Point{X: 0.3, Y: 0.5}
	}
	f.Points[gesture.IndexTip].Y = 0.5 + d
	return f
}

func TestSceneStartsClosed(t *testing.T) {
	sc := newTestScene()
	snap := sc.Tick()

	assert.Equal(t, 0.0, snap.Spread)
	assert.Equal(t, sc.Closed.Flatten(nil), snap.Positions)
	assert.Nil(t, snap.Hand)
}

func TestSceneOpensWithPinch(t *testing.T) {
	sc := newTestScene()

	r, err := sc.OnDetection(pinch(0.3))
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Target)

	snap := sc.Tick()
	assert.InDelta(t, 0.1, snap.Spread, 1e-12)
	assert.Equal(t, 1.0, snap.Target)
	require.NotNil(t, snap.Hand)
	assert.InDelta(t, 0.7, snap.Hand.Points[gesture.Wrist].X, 1e-12)

	for i := 0; i < 400; i++ {
		snap = sc.Tick()
	}
	assert.InDeltaSlice(t, sc.Exploded.Flatten(nil), snap.Positions, 1e-6)
}

func TestSceneDecaysWithoutHand(t *testing.T) {
	sc := newTestScene()
	sc.Controller().Reset(1)

	_, err := sc.OnDetection(nil)
	require.NoError(t, err)

	var snap Snapshot
	for i := 0; i < 50; i++ {
		snap = sc.Tick()
	}
	assert.Less(t, snap.Spread, 0.01)
	assert.Nil(t, snap.Hand)
}

func TestSceneCloseThresholdSnapsTarget(t *testing.T) {
	sc := newTestScene()
	_, err := sc.OnDetection(pinch(0.3))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		sc.Tick()
	}
	before := sc.Controller().Current()

	r, err := sc.OnDetection(pinch(0.05))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Target)
	assert.Equal(t, 0.0, sc.Controller().Target())

	// The current value does not jump; it eases down on the following ticks.
	assert.Equal(t, before, sc.Controller().Current())
	snap := sc.Tick()
	assert.InDelta(t, before*0.9, snap.Spread, 1e-12)
	assert.Greater(t, snap.Spread, 0.0)
}

func TestSceneKeepsTargetOnMalformedFrame(t *testing.T) {
	sc := newTestScene()
	_, err := sc.OnDetection(pinch(0.125))
	require.NoError(t, err)

	_, err = sc.OnDetection(&gesture.Frame{Points: make([]gesture.Point, 8)})
	assert.True(t, errors.Is(err, gesture.ErrMalformedFrame))
	assert.InDelta(t, 0.5, sc.Controller().Target(), 1e-12)
	assert.NotNil(t, sc.Tick().Hand)
}

func TestSceneBufferReused(t *testing.T) {
	sc := newTestScene()
	a := sc.Tick().Positions
	b := sc.Tick().Positions
	assert.Equal(t, &a[0], &b[0])
	assert.Len(t, a, 3*300)
}

func TestNewSceneFromMismatch(t *testing.T) {
	sc := newTestScene()
	assert.Panics(t, func() {
		NewSceneFrom(sc.Closed, sc.Exploded[:10], nil, gesture.Extractor{})
	})
}

func TestSceneRun(t *testing.T) {
	sc := newTestScene()
	_, err := sc.OnDetection(pinch(0.3))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var ticks int
	stop := errors.New("stop")
	err = sc.Run(ctx, 200, SinkFunc(func(s Snapshot) error {
		ticks++
		if ticks == 5 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 5, ticks)
	assert.InDelta(t, 1-0.59049, sc.Controller().Current(), 1e-12)
}

func TestSceneRunCancelled(t *testing.T) {
	sc := newTestScene()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sc.Run(ctx, 60, SinkFunc(func(Snapshot) error { return nil }))
	assert.ErrorIs(t, err, context.Canceled)
}
