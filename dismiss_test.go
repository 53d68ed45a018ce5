package handoff

import (
	"math"
	"testing"
)

// dismissal is a detail screen presented full-screen over the grid, ready
// to be dismissed by a gesture.
type dismissal struct {
	*presentation
	ctx    *TransitionContext
	driver *InteractiveTransition
	cfg    InteractionConfig
}

func newDismissal() *dismissal {
	p := newPresentation()
	p.grid.root.RemoveFromSuperview()
	p.detail.root.SetFrame(Rect{0, 0, 320, 480})
	p.container.AddSubview(p.detail.root)
	return &dismissal{
		presentation: p,
		ctx:          NewTransitionContext(p.container, p.detail, p.grid),
		driver:       NewInteractiveTransition(linearTransition(false)),
		cfg:          DefaultConfig().Interaction,
	}
}

func (d *dismissal) interaction() *DismissalInteraction {
	di := NewDismissalInteraction(d.detail, d.driver, d.cfg)
	di.Dismiss = func() { di.Start(d.ctx) }
	return di
}

func (d *dismissal) pull() *PullToDismiss {
	pd := NewPullToDismiss(d.detail, d.driver, d.cfg)
	pd.Dismiss = func() { pd.Start(d.ctx) }
	return pd
}

func pan(phase PanPhase, ty, vy float64) PanEvent {
	return PanEvent{Phase: phase, Translation: Point{0, ty}, Velocity: Point{0, vy}}
}

func affineNearIdentity(m Affine) bool {
	for i := range m {
		if math.Abs(m[i]-IdentityAffine[i]) > 1e-4 {
			return false
		}
	}
	return true
}

// --- DismissalInteraction ---

func TestDismissalShouldBegin(t *testing.T) {
	d := newDismissal()
	di := d.interaction()
	if !di.ShouldBegin() {
		t.Error("a screen without a scroll view may always begin")
	}
	d.detail.scroll = NewScrollView("scroll", Rect{0, 0, 320, 480}, Size{320, 2000})
	d.detail.scroll.ContentOffset = Point{0, 10}
	if di.ShouldBegin() {
		t.Error("a scrolled list blocks the gesture")
	}
	d.detail.scroll.ContentOffset = Point{}
	if !di.ShouldBegin() {
		t.Error("a list at the top allows the gesture")
	}
}

func TestDismissalScaleCenterProgress(t *testing.T) {
	d := newDismissal()
	di := d.interaction()

	di.Handle(pan(PanBegan, 0, 0))
	if !di.InteractionInProgress() || !d.driver.InteractionInProgress() {
		t.Fatal("began should start the interactive dismissal")
	}
	if d.photo.UserInteractionEnabled {
		t.Error("touches are disabled while the gesture owns the screen")
	}

	di.Handle(pan(PanChanged, 48, 0))
	if !approxEqual(d.ctx.Progress(), 0.1) {
		t.Errorf("progress = %v, want 48/480", d.ctx.Progress())
	}
	if s := d.container.Transform; !approxEqual(s[0], 0.9) || !approxEqual(s[3], 0.9) {
		t.Errorf("container transform = %v, want scale 0.9", s)
	}

	di.Handle(pan(PanChanged, 300, 0))
	if !approxEqual(d.ctx.Progress(), 80.0/480) {
		t.Errorf("progress = %v, want capped at the max translation", d.ctx.Progress())
	}
}

func TestDismissalEndThresholds(t *testing.T) {
	tests := []struct {
		name     string
		ty, vy   float64
		finishes bool
	}{
		{"short slow pull cancels", 50, 0, false},
		{"past half finishes", 300, 0, true},
		{"fast flick finishes", 10, 400, true},
		{"past half flicked back cancels", 300, -400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDismissal()
			di := d.interaction()
			di.Handle(pan(PanBegan, 0, 0))
			di.Handle(pan(PanChanged, tt.ty, tt.vy))
			di.Handle(pan(PanEnded, tt.ty, tt.vy))
			for i := 0; i < 10; i++ {
				di.Update(0.25)
			}

			completed, did := d.ctx.IsCompleted()
			if !completed || did != tt.finishes {
				t.Fatalf("completed=%v didComplete=%v, want %v", completed, did, tt.finishes)
			}
			if di.InteractionInProgress() {
				t.Error("interaction should be over")
			}
			if !affineNearIdentity(d.container.Transform) {
				t.Errorf("container transform = %v, want identity", d.container.Transform)
			}
			if !d.photo.UserInteractionEnabled {
				t.Error("touches should be restored")
			}
			if !tt.finishes && d.grid.root.Superview != nil {
				t.Error("a cancelled dismissal removes the presenting screen again")
			}
		})
	}
}

func TestDismissalCancelledGesture(t *testing.T) {
	d := newDismissal()
	di := d.interaction()
	di.Handle(pan(PanBegan, 0, 0))
	di.Handle(pan(PanChanged, 400, 0))
	di.Handle(pan(PanCancelled, 400, 0))
	for i := 0; i < 10; i++ {
		di.Update(0.25)
	}
	if completed, did := d.ctx.IsCompleted(); !completed || did {
		t.Errorf("completed=%v didComplete=%v, want cancelled", completed, did)
	}
}

func TestDismissalDragAndScale(t *testing.T) {
	d := newDismissal()
	d.cfg.Style = InteractionDragAndScale
	di := d.interaction()

	di.Handle(pan(PanBegan, 0, 0))
	di.Handle(PanEvent{Phase: PanChanged, Translation: Point{20, 48}})

	snaps := d.driver.Transition().Session().Snapshots(SideFrom)
	if len(snaps) == 0 {
		t.Fatal("no departing snapshots")
	}
	want := ScaleAffine(0.9, 0.9).Concat(TranslateAffine(20, 48))
	for _, s := range snaps {
		for i := range want {
			if !approxEqual(s.Transform[i], want[i]) {
				t.Fatalf("snapshot transform = %v, want %v", s.Transform, want)
			}
		}
	}
	if d.ctx.IsInteractive() {
		t.Error("dragAndScale moves snapshots without scrubbing the timeline")
	}
	if d.container.Transform != IdentityAffine {
		t.Error("dragAndScale leaves the container alone")
	}
}

// --- PullToDismiss ---

func TestPullShouldBegin(t *testing.T) {
	d := newDismissal()
	pd := d.pull()
	if pd.ShouldBegin(Point{0, 100}) {
		t.Error("pull needs a dismissal scroll view")
	}
	d.detail.scroll = NewScrollView("scroll", Rect{0, 0, 320, 480}, Size{320, 2000})
	tests := []struct {
		name   string
		offset float64
		vy     float64
		want   bool
	}{
		{"at top pulling down", 0, 100, true},
		{"at top pushing up", 0, -100, false},
		{"scrolled", 30, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.detail.scroll.ContentOffset = Point{0, tt.offset}
			if got := pd.ShouldBegin(Point{0, tt.vy}); got != tt.want {
				t.Errorf("ShouldBegin = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPullProgressRubberBands(t *testing.T) {
	d := newDismissal()
	pd := d.pull()
	pd.Handle(pan(PanBegan, 0, 0))

	pd.Handle(pan(PanChanged, 240, 0))
	if !approxEqual(d.ctx.Progress(), 0.5) || !approxEqual(d.detail.root.Frame.Y, 240) {
		t.Errorf("progress=%v rootY=%v, want 0.5 and 240", d.ctx.Progress(), d.detail.root.Frame.Y)
	}

	pd.Handle(pan(PanChanged, -48, 0))
	want := -0.1 / 3
	if !approxEqual(d.ctx.Progress(), want) {
		t.Errorf("progress = %v, want rubber-banded %v", d.ctx.Progress(), want)
	}
	if !approxEqual(d.detail.root.Frame.Y, 480*want) {
		t.Errorf("rootY = %v", d.detail.root.Frame.Y)
	}
}

func TestPullFinish(t *testing.T) {
	d := newDismissal()
	pd := d.pull()
	pd.Handle(pan(PanBegan, 0, 0))
	pd.Handle(pan(PanChanged, 240, 900))
	pd.Handle(pan(PanEnded, 240, 900))
	for i := 0; i < 10; i++ {
		pd.Update(0.25)
	}
	if completed, did := d.ctx.IsCompleted(); !completed || !did {
		t.Fatalf("completed=%v didComplete=%v", completed, did)
	}
	if math.Abs(d.detail.root.Frame.Y-480) > 1e-3 {
		t.Errorf("root y = %v, want moved off the bottom", d.detail.root.Frame.Y)
	}
	if pd.InteractionInProgress() || !d.photo.UserInteractionEnabled {
		t.Error("interaction should be over with touches restored")
	}
}

func TestPullCancel(t *testing.T) {
	d := newDismissal()
	pd := d.pull()
	pd.Handle(pan(PanBegan, 0, 0))
	pd.Handle(pan(PanChanged, 100, 0))
	pd.Handle(pan(PanEnded, 100, 0))
	for i := 0; i < 10; i++ {
		pd.Update(0.25)
	}
	if completed, did := d.ctx.IsCompleted(); !completed || did {
		t.Fatalf("completed=%v didComplete=%v, want cancelled", completed, did)
	}
	if math.Abs(d.detail.root.Frame.Y) > 1e-3 {
		t.Errorf("root y = %v, want back at the presented frame", d.detail.root.Frame.Y)
	}
}

func TestPanPhaseString(t *testing.T) {
	for phase, want := range map[PanPhase]string{
		PanBegan: "began", PanChanged: "changed", PanEnded: "ended", PanCancelled: "cancelled",
	} {
		if phase.String() != want {
			t.Errorf("%d.String() = %q, want %q", phase, phase.String(), want)
		}
	}
}
