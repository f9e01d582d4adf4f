// Package config loads the runtime settings of ascii-sphere from TOML or YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Smoothing modes.
const (
	SmoothingExponential = "exponential"
	SmoothingSpring      = "spring"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the complete runtime configuration.
type Config struct {
	Particles Particles `toml:"particles" yaml:"particles"`
	Gesture   Gesture   `toml:"gesture" yaml:"gesture"`
	Smoothing Smoothing `toml:"smoothing" yaml:"smoothing"`
	Render    Render    `toml:"render" yaml:"render"`
	Server    Server    `toml:"server" yaml:"server"`
	Detector  Detector  `toml:"detector" yaml:"detector"`
	Log       Log       `toml:"log" yaml:"log"`
}

// Particles sizes the sphere and its explosion.
type Particles struct {
	Count  int     `toml:"count" yaml:"count"`
	Radius float64 `toml:"radius" yaml:"radius"`
	Spread float64 `toml:"spread" yaml:"spread"`
	// Seed makes the explosion reproducible; 0 picks a random cloud.
	Seed uint64 `toml:"seed" yaml:"seed"`
}

// Gesture holds the pinch thresholds in normalized landmark units.
type Gesture struct {
	CloseThreshold float64 `toml:"close_threshold" yaml:"close_threshold"`
	OpenThreshold  float64 `toml:"open_threshold" yaml:"open_threshold"`
	Mirror         bool    `toml:"mirror" yaml:"mirror"`
}

// Smoothing selects how the spread follows the gesture.
type Smoothing struct {
	Mode            string  `toml:"mode" yaml:"mode"`
	Alpha           float64 `toml:"alpha" yaml:"alpha"`
	SpringFrequency float64 `toml:"spring_frequency" yaml:"spring_frequency"`
	SpringDamping   float64 `toml:"spring_damping" yaml:"spring_damping"`
}

// Render configures the renderers and their camera.
type Render struct {
	FPS      int     `toml:"fps" yaml:"fps"`
	Theme    string  `toml:"theme" yaml:"theme"`
	Overlay  bool    `toml:"overlay" yaml:"overlay"`
	FOV      float64 `toml:"fov" yaml:"fov"`
	Distance float64 `toml:"distance" yaml:"distance"`
	Width    int     `toml:"width" yaml:"width"`
	Height   int     `toml:"height" yaml:"height"`
}

// Server configures the landmark ingest endpoint.
type Server struct {
	Address string `toml:"address" yaml:"address"`
	Prefix  string `toml:"prefix" yaml:"prefix"`
	Root    string `toml:"root" yaml:"root"`
}

// Detector configures the optional pixel based cascade detector.
type Detector struct {
	// Cascade is the path of a pigo cascade file. Empty disables the detector.
	Cascade     string  `toml:"cascade" yaml:"cascade"`
	MinSize     int     `toml:"min_size" yaml:"min_size"`
	MaxSize     int     `toml:"max_size" yaml:"max_size"`
	ShiftFactor float64 `toml:"shift_factor" yaml:"shift_factor"`
	ScaleFactor float64 `toml:"scale_factor" yaml:"scale_factor"`
	IoU         float64 `toml:"iou" yaml:"iou"`
	MinScore    float32 `toml:"min_score" yaml:"min_score"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns the settings of the original effect.
func Default() Config {
	return Config{
		Particles: Particles{
			Count:  5000,
			Radius: 150,
			Spread: 600,
		},
		Gesture: Gesture{
			CloseThreshold: 0.05,
			OpenThreshold:  0.20,
			Mirror:         true,
		},
		Smoothing: Smoothing{
			Mode:            SmoothingExponential,
			Alpha:           0.1,
			SpringFrequency: 6,
			SpringDamping:   1,
		},
		Render: Render{
			FPS:      60,
			Theme:    ThemeDark,
			Overlay:  true,
			FOV:      75,
			Distance: 500,
			Width:    960,
			Height:   720,
		},
		Server: Server{
			Address: "localhost:5000",
			Prefix:  "/",
			Root:    ".",
		},
		Detector: Detector{
			MinSize:     20,
			MaxSize:     400,
			ShiftFactor: 0.1,
			ScaleFactor: 1.1,
			IoU:         0.1,
			MinScore:    5,
		},
		Log: Log{
			Level: "info",
			File:  "debug.log",
		},
	}
}

// Load reads the file at path on top of Default and validates the result.
// The format is picked from the extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the ranges the animation relies on.
func (c Config) Validate() error {
	switch {
	case c.Particles.Count < 0:
		return invalid("particles.count must not be negative, got %d", c.Particles.Count)
	case c.Particles.Radius <= 0:
		return invalid("particles.radius must be positive, got %g", c.Particles.Radius)
	case c.Particles.Spread < 0:
		return invalid("particles.spread must not be negative, got %g", c.Particles.Spread)
	case c.Gesture.CloseThreshold < 0:
		return invalid("gesture.close_threshold must not be negative, got %g", c.Gesture.CloseThreshold)
	case c.Gesture.OpenThreshold <= c.Gesture.CloseThreshold:
		return invalid("gesture.open_threshold (%g) must exceed close_threshold (%g)",
			c.Gesture.OpenThreshold, c.Gesture.CloseThreshold)
	case c.Render.FPS <= 0:
		return invalid("render.fps must be positive, got %d", c.Render.FPS)
	case c.Render.FOV <= 0 || c.Render.FOV >= 180:
		return invalid("render.fov must be in (0, 180), got %g", c.Render.FOV)
	case c.Render.Distance <= 0:
		return invalid("render.distance must be positive, got %g", c.Render.Distance)
	}

	switch c.Smoothing.Mode {
	case SmoothingExponential:
		if c.Smoothing.Alpha <= 0 || c.Smoothing.Alpha > 1 {
			return invalid("smoothing.alpha must be in (0, 1], got %g", c.Smoothing.Alpha)
		}
	case SmoothingSpring:
		if c.Smoothing.SpringFrequency <= 0 {
			return invalid("smoothing.spring_frequency must be positive, got %g", c.Smoothing.SpringFrequency)
		}
		if c.Smoothing.SpringDamping < 0 {
			return invalid("smoothing.spring_damping must not be negative, got %g", c.Smoothing.SpringDamping)
		}
	default:
		return invalid("unknown smoothing.mode %q", c.Smoothing.Mode)
	}

	switch c.Render.Theme {
	case ThemeDark, ThemeLight:
	default:
		return invalid("unknown render.theme %q", c.Render.Theme)
	}

	if c.Detector.Cascade != "" {
		if c.Detector.MinSize <= 0 || c.Detector.MaxSize < c.Detector.MinSize {
			return invalid("detector sizes must satisfy 0 < min_size <= max_size, got %d and %d",
				c.Detector.MinSize, c.Detector.MaxSize)
		}
		if c.Detector.ScaleFactor <= 1 {
			return invalid("detector.scale_factor must exceed 1, got %g", c.Detector.ScaleFactor)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
