package websocket

import (
	"encoding/binary"
	"fmt"

	"github.com/esimov/ascii-sphere/detector"
	"github.com/esimov/ascii-sphere/gesture"
)

// frameHeaderSize is the size of the width and height prefix of a binary frame.
const frameHeaderSize = 8

// Landmarks is the text message sent by a browser side hand tracker: one
// landmark list per detected hand. An empty list means no hand in view.
type Landmarks struct {
	Hands [][]gesture.Point `json:"hands"`
}

// Frame returns the first hand, or nil when no hand was detected.
func (m Landmarks) Frame() *gesture.Frame {
	if len(m.Hands) == 0 {
		return nil
	}
	return &gesture.Frame{Points: m.Hands[0]}
}

// Status is the reply sent after every processed message.
type Status struct {
	Target   float64 `json:"target"`
	Distance float64 `json:"distance"`
	Detected bool    `json:"detected"`
	Error    string  `json:"error,omitempty"`
}

// decodeImage parses a binary camera frame: big endian uint32 width and
// height followed by width*height grayscale bytes.
func decodeImage(data []byte) (detector.Image, error) {
	if len(data) < frameHeaderSize {
		return detector.Image{}, fmt.Errorf("frame too short: %d bytes", len(data))
	}
	w := int(binary.BigEndian.Uint32(data[0:4]))
	h := int(binary.BigEndian.Uint32(data[4:8]))
	pixels := data[frameHeaderSize:]
	if w <= 0 || h <= 0 || len(pixels) != w*h {
		return detector.Image{}, fmt.Errorf("frame of %dx%d carries %d pixels", w, h, len(pixels))
	}
	return detector.Image{Pixels: pixels, Width: w, Height: h}, nil
}

// EncodeImage builds the binary frame accepted by the server.
func EncodeImage(img detector.Image) []byte {
	out := make([]byte, frameHeaderSize+len(img.Pixels))
	binary.BigEndian.PutUint32(out[0:4], uint32(img.Width))
	binary.BigEndian.PutUint32(out[4:8], uint32(img.Height))
	copy(out[frameHeaderSize:], img.Pixels)
	return out
}
