package cli

import (
	"context"
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

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Loaded 1204 papers (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// stageLogger reports pipeline stages at debug level.
type stageLogger struct {
	logger *log.Logger
}

func (s stageLogger) OnLabelComplete(_ context.Context, vertices, components int, d time.Duration) {
	s.logger.Debug("label stage", "vertices", vertices, "components", components, "duration", d)
}

func (s stageLogger) OnLayoutComplete(_ context.Context, components, fallbacks int, d time.Duration, err error) {
	if err != nil {
		s.logger.Debug("layout stage failed", "components", components, "error", err)
		return
	}
	s.logger.Debug("layout stage", "components", components, "fallbacks", fallbacks, "duration", d)
}

func (s stageLogger) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		s.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	s.logger.Debug("rendered", "format", format, "bytes", size, "duration", d)
}
