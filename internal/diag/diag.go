// Package diag implements the engine's print-callback sink: every
// print object, and every duplicate-name registration error from the
// named registry, is surfaced through here rather than directly to
// stdout, so a host can redirect, filter, or timestamp engine output
// uniformly.
package diag

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// Sink wraps a charmbracelet/log logger and implements both
// registry.Diagnostics (Errorf/Infof) and the error/standard print
// split an embeddable patch runtime needs: ordinary patch output
// (print) goes to Infof, registration errors and malformed-patch
// reports go to Errorf.
type Sink struct {
	logger *log.Logger
}

// Option configures a Sink.
type Option func(*log.Logger)

// WithLevel sets the minimum level the sink emits.
func WithLevel(lvl log.Level) Option {
	return func(l *log.Logger) { l.SetLevel(lvl) }
}

// New builds a Sink writing to w (os.Stderr is the usual choice for a
// host binary, keeping stdout free for any audio-adjacent piping).
func New(w io.Writer, opts ...Option) *Sink {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	for _, opt := range opts {
		opt(logger)
	}
	return &Sink{logger: logger}
}

// Errorf reports a patch-level error (duplicate named-registry
// binding, unknown object label, malformed patch statement).
func (s *Sink) Errorf(format string, args ...any) {
	s.logger.Errorf(format, args...)
}

// Infof reports ordinary patch output (print object messages,
// DSP on/off notifications).
func (s *Sink) Infof(format string, args ...any) {
	s.logger.Infof(format, args...)
}

// NewLogFileName builds a timestamped log file name under dir using
// pattern (a strftime pattern, e.g. "pdrt-%Y%m%d-%H%M%S.log"), for
// hosts that want a fresh log file per run instead of writing straight
// to the console.
func NewLogFileName(dir, pattern string) (string, error) {
	f, err := strftime.New(pattern)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, f.FormatString(time.Now())), nil
}

// Discard is a Sink that drops everything, useful for tests that don't
// care about diagnostic output.
func Discard() *Sink {
	return New(io.Discard)
}
