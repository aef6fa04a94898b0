package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/unkn0wn-root/colorwire"
)

func TestEntriesCarryFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base)

	l.Debug("self-healed single", colorwire.Fields{"key": "single:p:k", "reason": "malformed_padding"})
	e := hook.LastEntry()
	if e == nil || e.Level != logrus.DebugLevel {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Data["component"] != "colorwire" || e.Data["reason"] != "malformed_padding" {
		t.Fatalf("unexpected data %v", e.Data)
	}

	boom := errors.New("boom")
	l.Warn("gen snapshot error", colorwire.Fields{"err": boom, "key": "k"})
	e = hook.LastEntry()
	if e.Level != logrus.WarnLevel || e.Data[logrus.ErrorKey] != boom || e.Data["key"] != "k" {
		t.Fatalf("unexpected warn entry %+v", e.Data)
	}

	l.Info("i", nil)
	l.Error("e", nil)
	if n := len(hook.AllEntries()); n != 4 {
		t.Fatalf("got %d entries want 4", n)
	}
}

func TestNilAndZeroValueDiscard(t *testing.T) {
	for _, l := range []Logger{New(nil), {}} {
		l.Debug("d", nil)
		l.Warn("w", colorwire.Fields{"err": errors.New("boom"), "key": "k"})
		l.Error("e", colorwire.Fields{"reason": "malformed_padding"})
	}
}
