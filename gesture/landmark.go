// Package gesture turns hand landmark frames into a normalized openness value.
package gesture

// Landmark indices of the standard 21 point hand model.
const (
	Wrist     = 0
	ThumbTip  = 4
	IndexTip  = 8
	MiddleTip = 12
	RingTip   = 16
	PinkyTip  = 20

	NumLandmarks = 21
)

// Point is a landmark in normalized image coordinates. X and Y are fractions of
// the frame width and height, Z is the relative depth reported by the detector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is the landmark set of a single detected hand.
type Frame struct {
	Points []Point `json:"points"`
}

// Mirror returns a copy of the frame flipped horizontally (x -> 1-x), matching
// a mirrored camera feed.
func (f Frame) Mirror() Frame {
	out := Frame{Points: make([]Point, len(f.Points))}
	for i, p := range f.Points {
		out.Points[i] = Point{X: 1 - p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

// Connection is an edge of the hand skeleton between two landmark indices.
type Connection [2]int

// Connections lists the bones of the 21 point hand model.
var Connections = []Connection{
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	{5, 9}, {9, 10}, {10, 11}, {11, 12},
	{9, 13}, {13, 14}, {14, 15}, {15, 16},
	{13, 17}, {0, 17}, {17, 18}, {18, 19}, {19, 20},
}
