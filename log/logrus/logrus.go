// Package logrus adapts a logrus entry to colorwire.Logger.
package logrus

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/colorwire"
)

var _ colorwire.Logger = Logger{}

// Logger is safe to use as a zero value; it then discards everything.
type Logger struct{ E *logrus.Entry }

var discard = func() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}()

// New wraps l and tags every entry with component=colorwire. A nil l
// yields a discarding logger.
func New(l *logrus.Logger) Logger {
	if l == nil {
		return Logger{E: discard}
	}
	return Logger{E: l.WithField("component", "colorwire")}
}

func (l Logger) with(f colorwire.Fields) *logrus.Entry {
	e := l.E
	if e == nil {
		e = discard
	}
	if len(f) == 0 {
		return e
	}
	if err, ok := f["err"].(error); ok {
		rest := make(logrus.Fields, len(f)-1)
		for k, v := range f {
			if k != "err" {
				rest[k] = v
			}
		}
		return e.WithError(err).WithFields(rest)
	}
	return e.WithFields(logrus.Fields(f))
}

func (l Logger) Debug(msg string, f colorwire.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f colorwire.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f colorwire.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f colorwire.Fields) { l.with(f).Error(msg) }
