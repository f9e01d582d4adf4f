// Package cli implements the ascii-sphere command-line interface.
//
// Every command builds the particle scene from the configuration, starts the
// websocket endpoint that receives hand tracking results and then drives the
// render loop with the selected renderer:
//   - terminal: ASCII density art in the current terminal (default)
//   - window: a desktop window
//   - serve: no renderer, the spread is only logged
package cli

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/esimov/ascii-sphere/animation"
	"github.com/esimov/ascii-sphere/camera"
	"github.com/esimov/ascii-sphere/config"
	"github.com/esimov/ascii-sphere/detector"
	"github.com/esimov/ascii-sphere/gesture"
)

const appName = "ascii-sphere"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a CLI with a default logger and the default configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command alone starts the terminal renderer.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "A particle sphere that explodes as you open a pinch",
		Long:              `ascii-sphere renders a particle sphere that spreads apart as the distance between your thumb and index finger grows. Hand landmarks arrive over a websocket from a browser tracker or are detected from raw camera frames.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a .toml or .yaml config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	term := c.terminalCommand()
	root.RunE = term.RunE
	root.AddCommand(term)
	root.AddCommand(c.windowCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// setup loads the configuration and applies the log level.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	level, err := log.ParseLevel(c.Config.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)
	return nil
}

// sceneOptions maps the configuration onto the animation.
func sceneOptions(cfg config.Config) animation.Options {
	opts := animation.Options{
		Particles: cfg.Particles.Count,
		Radius:    cfg.Particles.Radius,
		Spread:    cfg.Particles.Spread,
		Extractor: gesture.Extractor{
			CloseThreshold: cfg.Gesture.CloseThreshold,
			OpenThreshold:  cfg.Gesture.OpenThreshold,
			Mirror:         cfg.Gesture.Mirror,
		},
	}
	if cfg.Particles.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Particles.Seed, cfg.Particles.Seed))
	}

	switch cfg.Smoothing.Mode {
	case config.SmoothingSpring:
		opts.Smoother = animation.NewSpring(cfg.Render.FPS, cfg.Smoothing.SpringFrequency, cfg.Smoothing.SpringDamping)
	default:
		opts.Smoother = animation.Exponential{Alpha: cfg.Smoothing.Alpha}
	}
	return opts
}

// cameraFor returns the camera described by the render settings.
func cameraFor(cfg config.Config) camera.Perspective {
	cam := camera.Default()
	cam.FOV = cfg.Render.FOV
	cam.Distance = cfg.Render.Distance
	return cam
}

// newDetector loads the cascade detector when one is configured.
func newDetector(cfg config.Detector) (detector.Detector, error) {
	if cfg.Cascade == "" {
		return nil, nil
	}
	return detector.LoadCascade(cfg.Cascade, detector.CascadeParams{
		MinSize:     cfg.MinSize,
		MaxSize:     cfg.MaxSize,
		ShiftFactor: cfg.ShiftFactor,
		ScaleFactor: cfg.ScaleFactor,
		IoU:         cfg.IoU,
		MinScore:    cfg.MinScore,
	})
}
