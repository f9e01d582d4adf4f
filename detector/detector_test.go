package detector

import (
	"errors"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/ascii-sphere/gesture"
)

func TestFixtureReplays(t *testing.T) {
	hand := &gesture.Frame{Points: make([]gesture.Point, gesture.NumLandmarks)}
	d := NewFixture(hand, nil, hand)

	for i, want := range []*gesture.Frame{hand, nil, hand, nil, nil} {
		got, err := d.Detect(Image{})
		require.NoError(t, err)
		assert.Same(t, want, got, "call %d", i)
	}
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var d Detector = Func(func(img Image) (*gesture.Frame, error) {
		if img.Width == 0 {
			return nil, boom
		}
		return &gesture.Frame{}, nil
	})

	_, err := d.Detect(Image{})
	assert.ErrorIs(t, err, boom)

	f, err := d.Detect(Image{Width: 1})
	assert.NoError(t, err)
	assert.NotNil(t, f)
}

func TestFingertipFrame(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 100, Col: 320, Scale: 30, Q: 4},
		{Row: 300, Col: 200, Scale: 30, Q: 12},
		{Row: 200, Col: 400, Scale: 30, Q: 9},
	}

	f := fingertipFrame(dets, 640, 480, 5)
	require.NotNil(t, f)
	require.Len(t, f.Points, gesture.NumLandmarks)

	assert.Equal(t, gesture.Point{X: 200.0 / 640, Y: 300.0 / 480}, f.Points[gesture.ThumbTip])
	assert.Equal(t, gesture.Point{X: 400.0 / 640, Y: 200.0 / 480}, f.Points[gesture.IndexTip])
	assert.InDelta(t, 0.46875, f.Points[gesture.Wrist].X, 1e-12)

	r, err := gesture.DefaultExtractor().Extract(f)
	require.NoError(t, err)
	assert.True(t, r.Detected)
	assert.Equal(t, 1.0, r.Target)
}

func TestFingertipFrameNoHand(t *testing.T) {
	assert.Nil(t, fingertipFrame(nil, 640, 480, 0))
	assert.Nil(t, fingertipFrame([]pigo.Detection{{Row: 1, Col: 1, Q: 10}}, 640, 480, 0))
	assert.Nil(t, fingertipFrame([]pigo.Detection{{Q: 10}, {Q: 1}}, 640, 480, 5))
	assert.Nil(t, fingertipFrame([]pigo.Detection{{Q: 10}, {Q: 10}}, 0, 0, 5))
}

func TestLoadCascadeErrors(t *testing.T) {
	_, err := LoadCascade("", CascadeParams{})
	assert.ErrorIs(t, err, ErrNoCascade)

	_, err = LoadCascade("testdata/missing", CascadeParams{})
	assert.Error(t, err)
}
