package handoff

import (
	"errors"
	"testing"
)

func beginInteractive(t *testing.T) (*presentation, *TransitionContext, *InteractiveTransition) {
	t.Helper()
	p := newPresentation()
	ctx := p.present()
	it := NewInteractiveTransition(linearTransition(true))
	if err := it.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return p, ctx, it
}

func TestInteractiveBeginPauses(t *testing.T) {
	_, _, it := beginInteractive(t)
	a := it.Transition().Animator()
	if a == nil || a.IsRunning() || a.State() != AnimatorActive {
		t.Fatal("Begin should build a paused timeline")
	}
	if !it.InteractionInProgress() {
		t.Error("interaction should be in progress")
	}
	if err := it.Begin(nil); err != nil {
		t.Errorf("a second Begin is ignored, got %v", err)
	}
}

func TestInteractiveUpdateScrubs(t *testing.T) {
	_, ctx, it := beginInteractive(t)
	it.Update(0.25)
	if ctx.Progress() != 0.25 || !ctx.IsInteractive() {
		t.Errorf("context progress = %v", ctx.Progress())
	}
	if got := it.Transition().Animator().FractionComplete(); !approxEqual(got, 0.25) {
		t.Errorf("fraction = %v, want 0.25", got)
	}
	it.Update(1.5)
	if got := it.Transition().Animator().FractionComplete(); got != 1 {
		t.Errorf("fraction = %v, want clamped to 1", got)
	}
}

func TestInteractiveCancelRestores(t *testing.T) {
	p, ctx, it := beginInteractive(t)
	it.Update(0.4)
	it.Cancel(0)
	if it.InteractionInProgress() || !ctx.WasCancelled() {
		t.Fatal("cancel should end the interaction")
	}
	it.Update(0.9)
	if ctx.Progress() != 0.4 {
		t.Error("updates after cancel are ignored")
	}

	it.Tick(0.5)
	completed, did := ctx.IsCompleted()
	if !completed || did {
		t.Fatalf("completed=%v didComplete=%v, want cancelled", completed, did)
	}
	if p.detail.root.Superview != nil {
		t.Error("cancelled presentation removes the destination")
	}
	if HoldsSnapshots(p.container) || p.thumb.Alpha != 1 {
		t.Error("cancel should restore the source screen")
	}
}

func TestInteractiveFinishSettleRate(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		want     float64
	}{
		{"slow gesture keeps real time", 0.2, 0.6},
		{"fast gesture speeds up", 3, 0.8},
		{"rate is capped", 50, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, it := beginInteractive(t)
			it.Update(0.5)
			it.Finish(tt.velocity)
			it.Tick(0.1)
			if got := it.Transition().Animator().FractionComplete(); !approxEqual(got, tt.want) {
				t.Errorf("fraction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInteractiveFinishCompletes(t *testing.T) {
	p, ctx, it := beginInteractive(t)
	it.Update(0.8)
	it.Finish(-4)
	it.Tick(1)
	if completed, did := ctx.IsCompleted(); !completed || !did {
		t.Fatalf("completed=%v didComplete=%v", completed, did)
	}
	if p.detail.root.Superview != p.container || HoldsSnapshots(p.container) {
		t.Error("finished presentation keeps the destination without snapshots")
	}
	if err := it.Begin(ctx); !errors.Is(err, ErrSessionRetired) {
		t.Errorf("Begin after finishing = %v, want ErrSessionRetired", err)
	}
}

func TestInteractiveIgnoredWithoutBegin(t *testing.T) {
	it := NewInteractiveTransition(linearTransition(true))
	it.Update(0.5)
	it.Cancel(1)
	it.Finish(1)
	it.Tick(1)
	if it.InteractionInProgress() || it.Transition().Animator() != nil {
		t.Error("an idle driver ignores gesture calls")
	}
}

func TestInteractiveBeginFailure(t *testing.T) {
	p := newPresentation()
	it := NewInteractiveTransition(linearTransition(true))
	err := it.Begin(NewTransitionContext(p.container, p.grid, &Tabs{}))
	if !errors.Is(err, ErrNoParticipant) || it.InteractionInProgress() {
		t.Errorf("err = %v", err)
	}
}
