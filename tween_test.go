package handoff

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenFrameReachesTarget(t *testing.T) {
	v := NewView("frame", Rect{10, 20, 30, 40})

	g := TweenFrame(v, Rect{100, 200, 60, 80}, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if math.Abs(v.Frame.X-55) > 0.5 {
		t.Errorf("X at half = %f, want ~55", v.Frame.X)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	want := Rect{100, 200, 60, 80}
	if math.Abs(v.Frame.X-want.X) > 0.01 || math.Abs(v.Frame.Y-want.Y) > 0.01 ||
		math.Abs(v.Frame.Width-want.Width) > 0.01 || math.Abs(v.Frame.Height-want.Height) > 0.01 {
		t.Errorf("Frame = %v, want ~%v", v.Frame, want)
	}
	if v.Layer.Frame != v.Frame {
		t.Error("layer frame should follow the tweened frame")
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	v := NewView("alpha", Rect{})

	g := TweenAlpha(v, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if math.Abs(v.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha at midpoint = %f, want ~0.5", v.Alpha)
	}
	if g.Done {
		t.Error("should not be Done at midpoint")
	}
}

func TestTweenTransformReachesTarget(t *testing.T) {
	v := NewView("transform", Rect{})
	target := ScaleAffine(0.5, 0.5).Concat(TranslateAffine(10, -20))

	g := TweenTransform(v, target, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	for i := range target {
		if math.Abs(v.Transform[i]-target[i]) > 0.01 {
			t.Errorf("Transform[%d] = %f, want %f", i, v.Transform[i], target[i])
		}
	}
}

func TestTweenResizesSnapshotContent(t *testing.T) {
	snap := Clone(NewView("src", Rect{0, 0, 10, 10}), false)

	g := TweenFrame(snap, Rect{0, 0, 50, 20}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	got := snap.Content().Frame
	if math.Abs(got.Width-50) > 0.01 || math.Abs(got.Height-20) > 0.01 {
		t.Errorf("content frame = %v, want ~50x20", got)
	}
}

func TestTweenOnDoneRunsOnce(t *testing.T) {
	v := NewView("done", Rect{})
	calls := 0
	g := TweenAlpha(v, 0, 0.5, ease.Linear)
	g.OnDone = func() { calls++ }

	g.Update(0.25)
	g.Update(0.25)
	g.Update(0.25)

	if calls != 1 {
		t.Errorf("OnDone called %d times, want 1", calls)
	}
}

func TestTweenStop(t *testing.T) {
	v := NewView("stop", Rect{})
	called := false
	g := TweenAlpha(v, 0, 1.0, ease.Linear)
	g.OnDone = func() { called = true }

	g.Update(0.5)
	before := v.Alpha
	g.Stop()
	g.Update(0.5)

	if !g.Done || called {
		t.Errorf("stopped group: Done=%v OnDone called=%v", g.Done, called)
	}
	if v.Alpha != before {
		t.Errorf("Alpha changed after Stop: %f -> %f", before, v.Alpha)
	}
}

func TestTweenDisposedTargetStops(t *testing.T) {
	v := NewView("disposed", Rect{})
	called := false
	g := TweenAlpha(v, 0, 1.0, ease.Linear)
	g.OnDone = func() { called = true }

	v.Dispose()
	g.Update(0.5)

	if !g.Done {
		t.Error("expected Done after target disposed")
	}
	if called {
		t.Error("OnDone should not run for a disposed target")
	}
}

func TestTweenZeroDurationJumps(t *testing.T) {
	v := NewView("zero", Rect{})
	called := false
	g := TweenAlpha(v, 0.25, 0, ease.Linear)
	g.OnDone = func() { called = true }

	g.Update(0)

	if v.Alpha != 0.25 || !g.Done || !called {
		t.Errorf("Alpha=%f Done=%v OnDone=%v, want 0.25/true/true", v.Alpha, g.Done, called)
	}
}
