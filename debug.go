package handoff

import (
	"fmt"
	"log/slog"
	"time"
)

// globalDebug enables the extra tree checks below. Handoff has no scene
// object, so the flag is package-wide.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, disposed-view
// access panics, deep trees are reported, and stage timings are logged at
// debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// debugCheckDisposed panics with a descriptive message when a disposed view is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(v *View, op string) {
	if v.disposed {
		panic(fmt.Sprintf("handoff debug: %s on disposed view %q", op, v.Name))
	}
}

// debugMaxTreeDepth is the depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(v *View) {
	depth := 0
	for p := v; p != nil; p = p.Superview {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("view tree is deep", slog.Int("depth", depth), slog.String("view", v.Name))
	}
}

// stageTimer logs the duration of consecutive setup stages. It is inert
// outside debug mode.
type stageTimer struct {
	op    string
	start time.Time
}

func newStageTimer(op string) *stageTimer {
	return &stageTimer{op: op, start: time.Now()}
}

// mark logs the time elapsed since the previous mark under the given stage name.
func (t *stageTimer) mark(stage string) {
	if !globalDebug {
		return
	}
	now := time.Now()
	Logger().Debug("stage finished",
		slog.String("op", t.op),
		slog.String("stage", stage),
		slog.Duration("elapsed", now.Sub(t.start)))
	t.start = now
}

// countNodes returns the number of views in the subtree rooted at v.
func countNodes(v *View) int {
	n := 1
	for _, c := range v.subviews {
		n += countNodes(c)
	}
	return n
}
