package ledgamma

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so attribute values
// such as a Config group are never resolved while logging is off.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var silent = slog.New(discard{})

// current is swapped by SetLogger while Tuners may be logging.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes ledgamma's tuning events to l. Nil restores the default,
// which logs nothing.
//
// Levels:
//   - [slog.LevelDebug]: tuner creation and table rebuilds
//   - [slog.LevelInfo]: mode and color-correction changes, with the derived floors
//   - [slog.LevelWarn]: rejected parameters, with the config that was refused
//
// Config and Floors implement [slog.LogValuer] and log as groups, e.g.
// floors.r=1 floors.g=2 floors.b=4.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set with SetLogger. It is safe for concurrent
// use.
func Logger() *slog.Logger {
	return current.Load()
}
