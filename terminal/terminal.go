// Package terminal renders the particle sphere as ASCII density art with termbox.
package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/esimov/ascii-sphere/animation"
	"github.com/esimov/ascii-sphere/camera"
	"github.com/esimov/ascii-sphere/gesture"
)

// Options configures the terminal renderer.
type Options struct {
	Camera  camera.Perspective
	Light   bool
	Overlay bool
}

// Terminal draws snapshots into a termbox back buffer.
type Terminal struct {
	backbuf  []termbox.Cell
	bbw, bbh int
	counts   []int

	cam     camera.Perspective
	fg, bg  termbox.Attribute
	overlay bool
}

// New creates a terminal renderer.
func New(opts Options) *Terminal {
	t := &Terminal{
		cam:     opts.Camera,
		fg:      termbox.ColorWhite,
		bg:      termbox.ColorDefault,
		overlay: opts.Overlay,
	}
	if opts.Light {
		t.fg, t.bg = termbox.ColorBlack, termbox.ColorWhite
	}
	return t
}

// Run takes over the terminal and animates scene at fps until ctx is done or
// the user presses Esc, q or Ctrl+C.
func (t *Terminal) Run(ctx context.Context, scene *animation.Scene, fps int) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	t.reallocBackBuffer(termbox.Size())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			switch ev := termbox.PollEvent(); ev.Type {
			case termbox.EventKey:
				if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
					cancel()
					return
				}
			case termbox.EventInterrupt, termbox.EventError:
				return
			}
		}
	}()

	err := scene.Run(ctx, fps, t)

	termbox.Interrupt()
	<-done

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Render implements animation.Sink.
func (t *Terminal) Render(s animation.Snapshot) error {
	if w, h := termbox.Size(); w != t.bbw || h != t.bbh {
		t.reallocBackBuffer(w, h)
	}
	t.draw(s)

	copy(termbox.CellBuffer(), t.backbuf)
	return termbox.Flush()
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
}

// draw fills the back buffer from a snapshot.
func (t *Terminal) draw(s animation.Snapshot) {
	t.counts = rasterize(t.cam, s.Positions, t.bbw, t.bbh, t.counts)
	for i, n := range t.counts {
		t.backbuf[i] = termbox.Cell{Ch: glyph(n), Fg: t.fg, Bg: t.bg}
	}

	t.print(0, 0, fmt.Sprintf("spread %.2f  target %.2f", s.Spread, s.Target))
	if t.overlay && s.Hand != nil {
		t.drawHand(s.Hand)
	}
}

// drawHand draws the mirrored hand skeleton in the overlay box.
func (t *Terminal) drawHand(hand *gesture.Frame) {
	b := overlayBox(t.bbw, t.bbh)
	if b.w < 4 || b.h < 3 {
		return
	}
	for _, c := range gesture.Connections {
		if c[0] >= len(hand.Points) || c[1] >= len(hand.Points) {
			continue
		}
		x0, y0 := b.cell(hand.Points[c[0]])
		x1, y1 := b.cell(hand.Points[c[1]])
		for _, p := range line(x0, y0, x1, y1) {
			t.set(p[0], p[1], '·')
		}
	}
	for _, p := range hand.Points {
		x, y := b.cell(p)
		t.set(x, y, 'o')
	}
}

func (t *Terminal) print(x, y int, s string) {
	for _, r := range s {
		t.set(x, y, r)
		x++
	}
}

func (t *Terminal) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= t.bbw || y >= t.bbh {
		return
	}
	t.backbuf[t.bbw*y+x] = termbox.Cell{Ch: r, Fg: t.fg, Bg: t.bg}
}
