package detector

import (
	"fmt"
	"os"
	"sort"
	"sync"

	pigo "github.com/esimov/pigo/core"

	"github.com/esimov/ascii-sphere/gesture"
)

// CascadeParams tunes the pigo scan.
type CascadeParams struct {
	MinSize     int
	MaxSize     int
	ShiftFactor float64
	ScaleFactor float64
	// IoU is the intersection over union threshold used to merge overlapping detections.
	IoU float64
	// MinScore drops detections below this quality.
	MinScore float32
}

// Cascade locates fingertips with a pigo object cascade trained on fingertip
// crops. The two strongest detections are taken as the thumb and index tips.
type Cascade struct {
	mu         sync.Mutex
	classifier *pigo.Pigo
	params     CascadeParams
}

// LoadCascade reads and unpacks the cascade file at path.
func LoadCascade(path string, p CascadeParams) (*Cascade, error) {
	if path == "" {
		return nil, ErrNoCascade
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the cascade file: %w", err)
	}
	return NewCascade(data, p)
}

// NewCascade unpacks a binary cascade.
func NewCascade(data []byte, p CascadeParams) (*Cascade, error) {
	// Unpack returns the number of cascade trees, the tree depth, the threshold
	// and the predictions of the leaf nodes.
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &Cascade{classifier: classifier, params: p}, nil
}

// Detect runs the cascade over img.
func (c *Cascade) Detect(img Image) (*gesture.Frame, error) {
	if len(img.Pixels) < img.Width*img.Height {
		return nil, fmt.Errorf("detector: %d pixels for a %dx%d frame", len(img.Pixels), img.Width, img.Height)
	}

	cParams := pigo.CascadeParams{
		MinSize:     c.params.MinSize,
		MaxSize:     c.params.MaxSize,
		ShiftFactor: c.params.ShiftFactor,
		ScaleFactor: c.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: img.Pixels,
			Rows:   img.Height,
			Cols:   img.Width,
			Dim:    img.Width,
		},
	}

	c.mu.Lock()
	dets := c.classifier.RunCascade(cParams, 0.0)
	dets = c.classifier.ClusterDetections(dets, c.params.IoU)
	c.mu.Unlock()

	return fingertipFrame(dets, img.Width, img.Height, c.params.MinScore), nil
}

// fingertipFrame turns the two best detections into a 21 point hand frame in
// normalized coordinates. Landmarks the cascade cannot see are placed halfway
// between the tips. Fewer than two detections means no hand.
func fingertipFrame(dets []pigo.Detection, width, height int, minScore float32) *gesture.Frame {
	tips := make([]pigo.Detection, 0, len(dets))
	for _, d := range dets {
		if d.Q >= minScore {
			tips = append(tips, d)
		}
	}
	if len(tips) < 2 || width <= 0 || height <= 0 {
		return nil
	}
	sort.SliceStable(tips, func(i, j int) bool { return tips[i].Q > tips[j].Q })

	normalize := func(d pigo.Detection) gesture.Point {
		return gesture.Point{
			X: float64(d.Col) / float64(width),
			Y: float64(d.Row) / float64(height),
		}
	}
	thumb, index := normalize(tips[0]), normalize(tips[1])
	// The thumb sits lower in the frame than the index finger.
	if thumb.Y < index.Y {
		thumb, index = index, thumb
	}
	mid := gesture.Point{X: (thumb.X + index.X) / 2, Y: (thumb.Y + index.Y) / 2}

	f := &gesture.Frame{Points: make([]gesture.Point, gesture.NumLandmarks)}
	for i := range f.Points {
		f.Points[i] = mid
	}
	f.Points[gesture.ThumbTip] = thumb
	f.Points[gesture.IndexTip] = index
	return f
}
