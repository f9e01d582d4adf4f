package gesture

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedFrame is returned for frames without the full landmark set.
// Callers skip the frame and keep their previous target.
var ErrMalformedFrame = errors.New("gesture: malformed landmark frame")

// boundaryEpsilon absorbs rounding in the distance so a pinch that sits on a
// threshold lands on 0 or 1 exactly.
const boundaryEpsilon = 1e-9

// Default pinch thresholds, in normalized landmark units.
const (
	DefaultCloseThreshold = 0.05
	DefaultOpenThreshold  = 0.20
)

// Extractor maps the thumb to index fingertip distance onto [0, 1].
type Extractor struct {
	CloseThreshold float64
	OpenThreshold  float64
	// Mirror flips every landmark horizontally before measuring.
	Mirror bool
}

// Reading is the outcome of one detection frame.
type Reading struct {
	Target   float64
	Distance float64
	Detected bool
	// Landmarks holds the (mirrored) points, for overlays.
	Landmarks Frame
}

// DefaultExtractor returns an extractor with the default thresholds and mirroring on.
func DefaultExtractor() Extractor {
	return Extractor{
		CloseThreshold: DefaultCloseThreshold,
		OpenThreshold:  DefaultOpenThreshold,
		Mirror:         true,
	}
}

// Extract computes the openness target for a frame. A nil frame means no hand
// was detected and yields a zero target.
func (e Extractor) Extract(f *Frame) (Reading, error) {
	if f == nil {
		return Reading{}, nil
	}
	if len(f.Points) < NumLandmarks {
		return Reading{}, fmt.Errorf("%w: got %d points, want %d", ErrMalformedFrame, len(f.Points), NumLandmarks)
	}

	landmarks := *f
	if e.Mirror {
		landmarks = f.Mirror()
	}

	thumb := landmarks.Points[ThumbTip]
	index := landmarks.Points[IndexTip]
	d := math.Hypot(thumb.X-index.X, thumb.Y-index.Y)

	return Reading{
		Target:    e.Openness(d),
		Distance:  d,
		Detected:  true,
		Landmarks: landmarks,
	}, nil
}

// Openness normalizes a pinch distance. Anything at or below the close
// threshold is fully closed.
func (e Extractor) Openness(d float64) float64 {
	if d <= e.CloseThreshold+boundaryEpsilon {
		return 0
	}
	if d >= e.OpenThreshold-boundaryEpsilon {
		return 1
	}
	v := (d - e.CloseThreshold) / (e.OpenThreshold - e.CloseThreshold)
	return math.Max(0, math.Min(1, v))
}
