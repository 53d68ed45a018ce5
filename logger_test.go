package handoff

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard every level")
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)
	Logger().Info("hello", slog.Int("n", 1))
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected record, got %q", buf.String())
	}
	SetLogger(nil)
	Logger().Info("dropped")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("nil logger should restore the silent default")
	}
}

// ---- Errors ----------------------------------------------------------------

func TestTransitionErrorWraps(t *testing.T) {
	err := newError("Transition.prepare", KindContainer, ErrContainerBusy)
	if !errors.Is(err, ErrContainerBusy) {
		t.Error("errors.Is should find the sentinel")
	}
	if KindOf(err) != KindContainer {
		t.Errorf("KindOf = %s, want container", KindOf(err))
	}
	want := "Transition.prepare [container]: container still holds snapshots of another session"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("x")) != KindUnknown {
		t.Error("foreign errors have unknown kind")
	}
	if KindOf(nil) != KindUnknown {
		t.Error("nil has unknown kind")
	}
}
