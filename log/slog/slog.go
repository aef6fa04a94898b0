// Package slog adapts a *log/slog.Logger to colorwire.Logger.
package slog

import (
	"context"
	stdslog "log/slog"
	"sort"

	"github.com/unkn0wn-root/colorwire"
)

var _ colorwire.Logger = Logger{}

// Logger is safe to use as a zero value; it then discards everything.
type Logger struct{ L *stdslog.Logger }

// New wraps l; a nil l yields a discarding logger.
func New(l *stdslog.Logger) Logger { return Logger{L: l} }

func (s Logger) log(level stdslog.Level, msg string, f colorwire.Fields) {
	ctx := context.Background()
	if s.L == nil || !s.L.Enabled(ctx, level) {
		return
	}
	s.L.LogAttrs(ctx, level, msg, attrs(f)...)
}

func (s Logger) Debug(msg string, f colorwire.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f colorwire.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f colorwire.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f colorwire.Fields) { s.log(stdslog.LevelError, msg, f) }

func attrs(f colorwire.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range keys {
		out = append(out, stdslog.Any(k, f[k]))
	}
	return out
}
