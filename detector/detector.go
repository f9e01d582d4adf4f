// Package detector defines the hand landmark detector capability and its
// implementations.
package detector

import (
	"errors"
	"sync"

	"github.com/esimov/ascii-sphere/gesture"
)

// ErrNoCascade is returned when a cascade detector is requested without a cascade file.
var ErrNoCascade = errors.New("detector: no cascade configured")

// Image is a grayscale camera frame, one byte per pixel, row major.
type Image struct {
	Pixels []uint8
	Width  int
	Height int
}

// Detector finds a hand in a camera frame. It returns a nil frame when no
// hand is visible.
type Detector interface {
	Detect(img Image) (*gesture.Frame, error)
}

// Func adapts a function to the Detector interface.
type Func func(img Image) (*gesture.Frame, error)

// Detect calls f(img).
func (f Func) Detect(img Image) (*gesture.Frame, error) {
	return f(img)
}

// Fixture replays a fixed sequence of frames, one per call, and reports no
// hand once the sequence is exhausted. It lets the animation run without a
// camera.
type Fixture struct {
	mu     sync.Mutex
	frames []*gesture.Frame
	next   int
}

// NewFixture returns a detector replaying frames in order. Nil entries stand
// for frames without a hand.
func NewFixture(frames ...*gesture.Frame) *Fixture {
	return &Fixture{frames: frames}
}

// Detect implements Detector.
func (f *Fixture) Detect(Image) (*gesture.Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.next >= len(f.frames) {
		return nil, nil
	}
	frame := f.frames[f.next]
	f.next++
	return frame, nil
}
