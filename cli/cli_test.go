package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/ascii-sphere/animation"
	"github.com/esimov/ascii-sphere/config"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestSpreadLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := &spreadLogger{logger: newLogger(&buf, log.InfoLevel), step: 0.01, interval: time.Second}
	now := time.Now()

	assert.True(t, sl.log(0, 1, now), "first value is always logged")
	assert.False(t, sl.log(0.5, 1, now.Add(100*time.Millisecond)), "too soon")
	assert.False(t, sl.log(0.005, 1, now.Add(2*time.Second)), "too small a change")
	assert.True(t, sl.log(0.5, 1, now.Add(2*time.Second)))
	assert.Contains(t, buf.String(), "spread")
}

func TestSceneOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 64
	cfg.Particles.Seed = 9

	opts := sceneOptions(cfg)
	assert.Equal(t, 64, opts.Particles)
	assert.NotNil(t, opts.Rand)
	assert.Equal(t, animation.Exponential{Alpha: 0.1}, opts.Smoother)
	assert.True(t, opts.Extractor.Mirror)

	a := animation.NewScene(opts)
	b := animation.NewScene(sceneOptions(cfg))
	assert.Equal(t, a.Exploded, b.Exploded, "seeded explosions are reproducible")

	cfg.Smoothing.Mode = config.SmoothingSpring
	assert.IsType(t, &animation.Spring{}, sceneOptions(cfg).Smoother)
}

func TestCameraFor(t *testing.T) {
	cfg := config.Default()
	cfg.Render.FOV = 60
	cam := cameraFor(cfg)
	assert.Equal(t, 60.0, cam.FOV)
	assert.Equal(t, 500.0, cam.Distance)
}

func TestNewDetectorDisabled(t *testing.T) {
	d, err := newDetector(config.Default().Detector)
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestSetupLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.toml")
	require.NoError(t, os.WriteFile(path, []byte("[particles]\ncount = 12\n[log]\nlevel = \"debug\"\n"), 0o644))

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	require.NoError(t, root.ParseFlags([]string{"--config", path}))
	require.NoError(t, c.setup(root, nil))

	assert.Equal(t, 12, c.Config.Particles.Count)
	assert.Equal(t, log.DebugLevel, c.Logger.GetLevel())
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  fps: 0\n"), 0o644))

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	require.NoError(t, root.ParseFlags([]string{"-c", path}))
	assert.ErrorIs(t, c.setup(root, nil), config.ErrInvalid)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"terminal", "window", "serve"}, names)
	assert.NotNil(t, root.RunE)
}

func TestRunStopsServerWithRenderer(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Config.Particles.Count = 100
	c.Config.Server.Address = "127.0.0.1:0"
	c.Config.Server.Root = t.TempDir()

	quit := errors.New("quit")
	var ticks int
	err := c.run(context.Background(), func(ctx context.Context, scene *animation.Scene) error {
		for i := 0; i < 3; i++ {
			ticks++
			scene.Tick()
		}
		return quit
	})
	assert.ErrorIs(t, err, quit)
	assert.Equal(t, 3, ticks)
	assert.Contains(t, buf.String(), "Generated 100 particles")
}
