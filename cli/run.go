package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/esimov/ascii-sphere/animation"
	"github.com/esimov/ascii-sphere/config"
	"github.com/esimov/ascii-sphere/terminal"
	"github.com/esimov/ascii-sphere/websocket"
	"github.com/esimov/ascii-sphere/window"
)

// renderFunc drives one renderer until ctx is done or the user quits.
type renderFunc func(ctx context.Context, scene *animation.Scene) error

func (c *CLI) terminalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "terminal",
		Short: "Render the sphere as ASCII art in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// termbox owns the screen, so logs go to a file.
			f, err := os.OpenFile(c.Config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			c.Logger.SetOutput(f)

			cfg := c.Config
			term := terminal.New(terminal.Options{
				Camera:  cameraFor(cfg),
				Light:   cfg.Render.Theme == config.ThemeLight,
				Overlay: cfg.Render.Overlay,
			})
			return c.run(cmd.Context(), func(ctx context.Context, scene *animation.Scene) error {
				return term.Run(ctx, scene, cfg.Render.FPS)
			})
		},
	}
}

func (c *CLI) windowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Render the sphere in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			opts := window.Options{
				Camera:  cameraFor(cfg),
				Width:   cfg.Render.Width,
				Height:  cfg.Render.Height,
				FPS:     cfg.Render.FPS,
				Light:   cfg.Render.Theme == config.ThemeLight,
				Overlay: cfg.Render.Overlay,
				Title:   appName,
			}
			return c.run(cmd.Context(), func(ctx context.Context, scene *animation.Scene) error {
				return window.Run(ctx, scene, opts)
			})
		},
	}
}

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the animation headless and log the spread",
		RunE: func(cmd *cobra.Command, args []string) error {
			fps := c.Config.Render.FPS
			sl := &spreadLogger{logger: c.Logger, step: 0.01, interval: 250 * time.Millisecond}
			return c.run(cmd.Context(), func(ctx context.Context, scene *animation.Scene) error {
				err := scene.Run(ctx, fps, animation.SinkFunc(func(s animation.Snapshot) error {
					sl.log(s.Spread, s.Target, time.Now())
					return nil
				}))
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}

// run builds the scene, serves the tracker endpoint in the background and
// renders on the calling goroutine. The server stops once rendering ends.
func (c *CLI) run(ctx context.Context, render renderFunc) error {
	cfg := c.Config
	p := newProgress(c.Logger)

	scene := animation.NewScene(sceneOptions(cfg))
	p.done(fmt.Sprintf("Generated %d particles", len(scene.Closed)))

	det, err := newDetector(cfg.Detector)
	if err != nil {
		return err
	}
	if det != nil {
		c.Logger.Info("cascade detector loaded", "path", cfg.Detector.Cascade)
	}

	srv := websocket.NewServer(websocket.HttpParams{
		Address: cfg.Server.Address,
		Prefix:  cfg.Server.Prefix,
		Root:    cfg.Server.Root,
	}, scene, det, c.Logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tracker server: %w", err)
		}
		return nil
	})

	renderErr := render(gctx, scene)
	cancel()

	if err := g.Wait(); err != nil {
		return err
	}
	return renderErr
}
