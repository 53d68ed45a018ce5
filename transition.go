package handoff

import (
	"log/slog"

	"github.com/tanema/gween/ease"
)

// TransitionOptions configures a Transition.
type TransitionOptions struct {
	Presenting bool
	// Duration in seconds.
	Duration float64
	// Curve defaults to ease.InOutCubic.
	Curve ease.TweenFunc
	// InteractiveStart leaves building the timeline to an interactive
	// driver.
	InteractiveStart bool
	ParentOffset     ParentOffsetMode
	Cloner           *Cloner
}

// Transition runs one presentation or dismissal: it resolves the two
// participating screens, builds a choreography session and one timeline
// committing each timing group, and tears everything down when the timeline
// completes.
type Transition struct {
	opts TransitionOptions

	prepared bool
	err      error

	from, to                 Transitionable
	fromScreen, toScreen     Screen
	fromViews, toViews       []*TransitioningView
	fromOverlays, toOverlays []*TransitioningView

	session  *Session
	animator *Animator
	finished bool
}

// NewTransition creates a transition.
func NewTransition(opts TransitionOptions) *Transition {
	if opts.Curve == nil {
		opts.Curve = ease.InOutCubic
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	return &Transition{opts: opts}
}

// Duration returns the duration in seconds.
func (t *Transition) Duration() float64 { return t.opts.Duration }

// IsPresenting reports whether the transition shows a new screen.
func (t *Transition) IsPresenting() bool { return t.opts.Presenting }

// Err returns the error that failed the transition, if any.
func (t *Transition) Err() error { return t.err }

// Session returns the current choreography session, or nil.
func (t *Transition) Session() *Session { return t.session }

// Animator returns the current timeline, or nil before it is built.
func (t *Transition) Animator() *Animator { return t.animator }

// Update advances the current timeline by dt seconds.
func (t *Transition) Update(dt float64) {
	if t.animator != nil {
		t.animator.Update(dt)
	}
}

// Animate builds the timeline and starts it.
func (t *Transition) Animate(ctx Context) error {
	t.opts.InteractiveStart = false
	a := t.InterruptibleAnimator(ctx)
	if t.err != nil {
		return t.err
	}
	a.Start()
	return nil
}

// InterruptibleAnimator returns the transition's timeline, building it on
// first use. Later calls return the same animator. When the transition
// failed, or an interactive driver is expected to start it, an empty
// animator is returned instead.
func (t *Transition) InterruptibleAnimator(ctx Context) *Animator {
	if t.animator != nil {
		return t.animator
	}
	if err := t.prepare(ctx); err != nil || t.opts.InteractiveStart {
		return NewAnimator(0, nil)
	}
	if err := t.build(ctx); err != nil {
		return NewAnimator(0, nil)
	}
	return t.animator
}

// Redirect replaces the timeline with a freshly built one and starts it.
// The previous timeline and its session are retired: their snapshots are
// removed and their completion never runs.
func (t *Transition) Redirect(ctx Context) *Animator {
	if err := t.prepare(ctx); err != nil || t.finished {
		return NewAnimator(0, nil)
	}
	if t.animator != nil {
		t.animator.Supersede()
		t.session.Supersede()
	}
	if err := t.build(ctx); err != nil {
		return NewAnimator(0, nil)
	}
	t.animator.Start()
	return t.animator
}

// fail reports err to the driver and logs it.
func (t *Transition) fail(ctx Context, err *TransitionError) error {
	t.err = err
	Logger().Error("transition failed",
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.String("error", err.Err.Error()))
	ctx.CompleteTransition(false)
	return err
}

// prepare resolves the participants and installs the destination screen.
// It runs once per transition.
func (t *Transition) prepare(ctx Context) error {
	if t.prepared {
		return t.err
	}
	t.prepared = true

	container := ctx.Container()
	if container == nil {
		return t.fail(ctx, newError("Transition.prepare", KindContainer, ErrNoContainer))
	}
	t.fromScreen, t.toScreen = ctx.From(), ctx.To()
	from, okFrom := ResolveParticipant(t.fromScreen)
	to, okTo := ResolveParticipant(t.toScreen)
	if !okFrom || !okTo || t.toScreen.RootView() == nil {
		return t.fail(ctx, newError("Transition.prepare", KindParticipant, ErrNoParticipant))
	}
	if HoldsSnapshots(container) {
		return t.fail(ctx, newError("Transition.prepare", KindContainer, ErrContainerBusy))
	}
	t.from, t.to = from, to

	beginAppearance(t.fromScreen, false)
	beginAppearance(t.toScreen, true)

	toRoot := t.toScreen.RootView()
	toRoot.SetFrame(ctx.FinalFrame(t.toScreen))
	container.InsertSubviewAt(toRoot, 0)
	container.BackgroundColor = ColorClear
	toRoot.SetNeedsLayout()
	toRoot.LayoutIfNeeded()
	container.LayoutIfNeeded()

	t.fromViews = from.TransitioningViews(to, false)
	t.toViews = to.TransitioningViews(from, true)
	t.fromOverlays = OverlayViews(t.fromScreen)
	t.toOverlays = OverlayViews(t.toScreen)
	return nil
}

// build creates a session and its timeline.
func (t *Transition) build(ctx Context) error {
	session, err := NewSession(SessionParams{
		From:         t.fromViews,
		To:           t.toViews,
		FromOverlays: t.fromOverlays,
		ToOverlays:   t.toOverlays,
		Container:    ctx.Container(),
		Presenting:   t.opts.Presenting,
		ParentOffset: t.opts.ParentOffset,
		Cloner:       t.opts.Cloner,
	})
	if err != nil {
		if te, ok := err.(*TransitionError); ok {
			return t.fail(ctx, te)
		}
		return t.fail(ctx, newError("Transition.build", KindUnknown, err))
	}

	fromRoot, toRoot := t.fromScreen.RootView(), t.toScreen.RootView()
	session.RecordAlpha(fromRoot, toRoot)
	hidden := append(append([]*TransitioningView(nil), t.fromOverlays...), t.fromViews...)
	if t.opts.Presenting {
		toRoot.Alpha = 0
	} else {
		hidden = append(append([]*TransitioningView(nil), t.toOverlays...), t.toViews...)
		if fromRoot != nil {
			fromRoot.Alpha = 0
		}
	}
	for _, tv := range hidden {
		session.RecordAlpha(tv.View)
		session.RecordAlpha(tv.View.subviews...)
	}

	if err := session.Arm(); err != nil {
		session.TearDown()
		return t.fail(ctx, err.(*TransitionError))
	}
	for _, tv := range hidden {
		session.HideSources(tv.View)
	}

	animator := NewAnimator(t.opts.Duration, t.opts.Curve)
	for _, h := range session.Handles(SideFrom) {
		animator.Observe(session.Snapshot(h))
	}
	for _, h := range session.Handles(SideTo) {
		animator.Observe(session.Snapshot(h))
	}
	for _, g := range session.Groups() {
		handles := g.Handles
		animator.AddAnimations(func() { session.Commit(handles) }, g.Delay, g.Duration)
	}
	animator.AddCompletion(func(Position) {
		t.finish(ctx, session)
	})

	t.session = session
	t.animator = animator
	return nil
}

// finish is the single teardown path, reached when the timeline completes
// at either end.
func (t *Transition) finish(ctx Context, session *Session) {
	if session != t.session || t.finished {
		return
	}
	t.finished = true
	session.TearDown()

	toRoot := t.toScreen.RootView()
	toRoot.Alpha = 1
	toRoot.SetNeedsLayout()
	toRoot.LayoutIfNeeded()

	endAppearance(t.fromScreen)
	endAppearance(t.toScreen)
	ctx.CompleteTransition(!ctx.WasCancelled())
}

func beginAppearance(s Screen, appearing bool) {
	if o, ok := s.(AppearanceObserver); ok {
		o.BeginAppearanceTransition(appearing)
	}
}

func endAppearance(s Screen) {
	if o, ok := s.(AppearanceObserver); ok {
		o.EndAppearanceTransition()
	}
}
