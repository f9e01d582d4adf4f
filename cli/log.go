package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// spreadLogger is the sink of the headless mode. It logs the spread whenever it
// moved by at least step since the last line, and at most once per interval.
type spreadLogger struct {
	logger   *log.Logger
	step     float64
	interval time.Duration

	last    float64
	lastAt  time.Time
	started bool
}

func (s *spreadLogger) log(spread, target float64, now time.Time) bool {
	if s.started && (now.Sub(s.lastAt) < s.interval || abs(spread-s.last) < s.step) {
		return false
	}
	s.started = true
	s.last, s.lastAt = spread, now
	s.logger.Info("spread", "current", spread, "target", target)
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
