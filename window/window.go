// Package window renders the particle sphere in a desktop window with ebiten.
package window

import (
	"context"
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/esimov/ascii-sphere/animation"
	"github.com/esimov/ascii-sphere/camera"
	"github.com/esimov/ascii-sphere/gesture"
)

const (
	pointSize    = 2
	overlayScale = 0.25
)

// Options configures the window renderer.
type Options struct {
	Camera  camera.Perspective
	Width   int
	Height  int
	FPS     int
	Light   bool
	Overlay bool
	Title   string
}

// Theme holds the colors of one page theme.
type Theme struct {
	Background color.Color
	Particle   color.Color
	Bone       color.Color
	Joint      color.Color
}

// ThemeFor returns white particles on black, or black on white for the light theme.
func ThemeFor(light bool) Theme {
	if light {
		return Theme{
			Background: color.White,
			Particle:   color.Black,
			Bone:       color.Black,
			Joint:      color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		}
	}
	return Theme{
		Background: color.Black,
		Particle:   color.White,
		Bone:       color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		Joint:      color.White,
	}
}

// Game adapts a scene to ebiten. Every Update is one render tick.
type Game struct {
	ctx     context.Context
	scene   *animation.Scene
	cam     camera.Perspective
	theme   Theme
	overlay bool
	last    animation.Snapshot
}

// NewGame creates the ebiten game for scene. The game ends when ctx is done.
func NewGame(ctx context.Context, scene *animation.Scene, opts Options) *Game {
	return &Game{
		ctx:     ctx,
		scene:   scene,
		cam:     opts.Camera,
		theme:   ThemeFor(opts.Light),
		overlay: opts.Overlay,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.last = g.scene.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.theme.Background)

	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	g.cam.ProjectBuffer(g.last.Positions, w, h, func(_ int, x, y float64) {
		vector.DrawFilledRect(screen, float32(x), float32(y), pointSize, pointSize, g.theme.Particle, false)
	})

	if g.overlay && g.last.Hand != nil {
		g.drawHand(screen, g.last.Hand, overlayRect(w, h))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) drawHand(screen *ebiten.Image, hand *gesture.Frame, r rect) {
	for _, c := range gesture.Connections {
		if c[0] >= len(hand.Points) || c[1] >= len(hand.Points) {
			continue
		}
		x0, y0 := r.point(hand.Points[c[0]])
		x1, y1 := r.point(hand.Points[c[1]])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, g.theme.Bone, true)
	}
	for _, p := range hand.Points {
		x, y := r.point(p)
		vector.DrawFilledCircle(screen, x, y, 2, g.theme.Joint, true)
	}
}

// rect is the overlay area in screen pixels.
type rect struct {
	x, y, w, h float64
}

// overlayRect places a 4:3 camera overlay in the bottom right corner.
func overlayRect(w, h float64) rect {
	ow := w * overlayScale
	oh := ow * 3 / 4
	return rect{x: w - ow - 10, y: h - oh - 10, w: ow, h: oh}
}

func (r rect) point(p gesture.Point) (float32, float32) {
	return float32(r.x + p.X*r.w), float32(r.y + p.Y*r.h)
}

// Run opens the window and blocks until it is closed or ctx is done. It must
// be called from the main goroutine.
func Run(ctx context.Context, scene *animation.Scene, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	if err := ebiten.RunGame(NewGame(ctx, scene, opts)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
