package handoff

import (
	"log/slog"
	"math"
)

// maxSettleRate caps how much a fast gesture speeds up the rest of the
// timeline.
const maxSettleRate = 4

// InteractiveTransition drives a Transition from a gesture: the timeline is
// built paused, scrubbed by Update and then either finished or reversed back
// to its start. Both outcomes end in the transition's single teardown path.
type InteractiveTransition struct {
	transition *Transition
	ctx        Context
	inProgress bool
	rate       float64
}

// NewInteractiveTransition wraps t.
func NewInteractiveTransition(t *Transition) *InteractiveTransition {
	return &InteractiveTransition{transition: t, rate: 1}
}

// Transition returns the wrapped transition.
func (it *InteractiveTransition) Transition() *Transition { return it.transition }

// InteractionInProgress reports whether a gesture currently owns the
// transition.
func (it *InteractiveTransition) InteractionInProgress() bool { return it.inProgress }

// Begin prepares the transition and pauses its timeline at the start.
// Calling it while an interaction is in progress has no effect.
func (it *InteractiveTransition) Begin(ctx Context) error {
	if it.inProgress {
		return nil
	}
	t := it.transition
	if err := t.prepare(ctx); err != nil {
		return err
	}
	if t.finished {
		return newError("InteractiveTransition.Begin", KindUnknown, ErrSessionRetired)
	}
	if t.animator == nil {
		if err := t.build(ctx); err != nil {
			return err
		}
	}
	t.animator.Pause()
	it.ctx = ctx
	it.inProgress = true
	it.rate = 1
	return nil
}

// Update reports progress to the context and scrubs the timeline to it.
func (it *InteractiveTransition) Update(progress float64) {
	if !it.inProgress {
		return
	}
	it.ctx.UpdateInteractiveTransition(progress)
	it.transition.animator.SetFractionComplete(clamp01(progress))
}

// Cancel runs the timeline back to its start. velocity is the gesture speed
// in fractions of the transition per second.
func (it *InteractiveTransition) Cancel(velocity float64) {
	if !it.inProgress {
		return
	}
	it.ctx.CancelInteractiveTransition()
	it.settle(true, velocity)
}

// Finish runs the timeline on to its end. velocity is the gesture speed in
// fractions of the transition per second.
func (it *InteractiveTransition) Finish(velocity float64) {
	if !it.inProgress {
		return
	}
	it.ctx.FinishInteractiveTransition()
	it.settle(false, velocity)
}

func (it *InteractiveTransition) settle(reversed bool, velocity float64) {
	a := it.transition.animator
	it.rate = math.Max(1, math.Min(maxSettleRate, math.Abs(velocity)*a.Duration()))
	if math.IsNaN(it.rate) {
		it.rate = 1
	}
	Logger().Debug("interactive transition settling",
		slog.Bool("cancelled", reversed),
		slog.Float64("fraction", a.FractionComplete()),
		slog.Float64("rate", it.rate))
	a.SetReversed(reversed)
	a.Continue()
	it.inProgress = false
}

// Tick advances the timeline by dt seconds. After Cancel or Finish a fast
// gesture speeds the remaining timeline up.
func (it *InteractiveTransition) Tick(dt float64) {
	it.transition.Update(dt * it.rate)
}
