// Package zap adapts a *zap.Logger to colorwire.Logger.
package zap

import (
	"sort"

	"github.com/unkn0wn-root/colorwire"
	"go.uber.org/zap"
)

var _ colorwire.Logger = Logger{}

// Logger is safe to use as a zero value; it then discards everything.
type Logger struct{ L *zap.Logger }

var nop = zap.NewNop()

// New wraps l; a nil l yields a no-op logger.
func New(l *zap.Logger) Logger {
	if l == nil {
		l = nop
	}
	return Logger{L: l.Named("colorwire")}
}

func (z Logger) l() *zap.Logger {
	if z.L == nil {
		return nop
	}
	return z.L
}

func (z Logger) Debug(msg string, f colorwire.Fields) { z.l().Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f colorwire.Fields)  { z.l().Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f colorwire.Fields)  { z.l().Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f colorwire.Fields) { z.l().Error(msg, fields(f)...) }

// fields sorts by key so output is stable across runs.
func fields(f colorwire.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
