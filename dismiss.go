package handoff

import "math"

// PanPhase is the state of a pan gesture sample.
type PanPhase uint8

const (
	PanBegan PanPhase = iota
	PanChanged
	PanEnded
	PanCancelled
)

func (p PanPhase) String() string {
	switch p {
	case PanBegan:
		return "began"
	case PanChanged:
		return "changed"
	case PanEnded:
		return "ended"
	default:
		return "cancelled"
	}
}

// PanEvent is one sample of a pan gesture. Translation is measured from the
// point the gesture began; Velocity is in points per second.
type PanEvent struct {
	Phase       PanPhase
	Translation Point
	Velocity    Point
}

// springVelocity converts a gesture velocity into the initial velocity of a
// settle spring covering distance.
func springVelocity(distance, velocity float64) float64 {
	if distance == 0 {
		return 0
	}
	return velocity / distance
}

// touchGuard disables interaction on a screen's subviews while a gesture
// owns it.
type touchGuard struct {
	disabled []*View
}

func (g *touchGuard) disable(root *View) {
	if root == nil || g.disabled != nil {
		return
	}
	for _, v := range root.subviews {
		if v.UserInteractionEnabled {
			v.UserInteractionEnabled = false
			g.disabled = append(g.disabled, v)
		}
	}
}

func (g *touchGuard) enable() {
	for _, v := range g.disabled {
		v.UserInteractionEnabled = true
	}
	g.disabled = nil
}

// --- DismissalInteraction ---

// DismissalInteraction turns pan samples on a presented screen into an
// interactive dismissal. With the scaleCenter style the container shrinks
// about its center as the finger moves down, up to MaxVerticalTranslation.
// With dragAndScale the departing snapshots follow the finger while
// shrinking.
type DismissalInteraction struct {
	cfg    InteractionConfig
	driver *InteractiveTransition
	screen Screen

	// Dismiss is called when a gesture begins outside an interaction. It
	// must start the dismissal and call Start with its context.
	Dismiss func()

	ctx         Context
	distance    float64
	presented   Rect
	interrupted Point
	inProgress  bool
	settle      []*TweenGroup
	touches     touchGuard
}

// NewDismissalInteraction creates an interaction dismissing screen through
// driver.
func NewDismissalInteraction(screen Screen, driver *InteractiveTransition, cfg InteractionConfig) *DismissalInteraction {
	return &DismissalInteraction{cfg: cfg, driver: driver, screen: screen}
}

// InteractionInProgress reports whether a gesture is driving a dismissal.
func (d *DismissalInteraction) InteractionInProgress() bool { return d.inProgress }

// Start records the geometry of the dismissal and begins the interactive
// driver. A context without a departing screen is completed as cancelled.
func (d *DismissalInteraction) Start(ctx Context) error {
	from := ctx.From()
	if from == nil || from.RootView() == nil || ctx.Container() == nil {
		ctx.CompleteTransition(false)
		return newError("DismissalInteraction.Start", KindParticipant, ErrNoParticipant)
	}
	d.ctx = ctx
	d.presented = ctx.FinalFrame(from)
	d.distance = ctx.Container().Frame.Height - d.presented.Y
	return d.driver.Begin(ctx)
}

// ShouldBegin reports whether a gesture may start: the screen's dismissal
// scroll view, if any, must be scrolled to the top.
func (d *DismissalInteraction) ShouldBegin() bool {
	if ds, ok := d.screen.(DismissalScroller); ok {
		if sv := ds.DismissalScrollView(); sv != nil {
			return sv.ContentOffset.Y <= 0
		}
	}
	return true
}

// Handle consumes one pan sample.
func (d *DismissalInteraction) Handle(e PanEvent) {
	t := e.Translation.Add(d.interrupted)
	switch e.Phase {
	case PanBegan:
		d.began()
	case PanChanged:
		d.changed(t)
	case PanCancelled:
		d.cancel(springVelocity(-t.Y, e.Velocity.Y))
	case PanEnded:
		v := e.Velocity.Y
		if v > d.cfg.FinishVelocity || (t.Y > d.distance*d.cfg.FinishFraction && v > -d.cfg.FinishVelocity) {
			d.finish(springVelocity(d.distance-t.Y, v))
		} else {
			d.cancel(springVelocity(-t.Y, v))
		}
	}
}

// Update advances the settle animation and the transition by dt seconds.
func (d *DismissalInteraction) Update(dt float64) {
	for _, g := range d.settle {
		g.Update(float32(dt))
	}
	d.driver.Tick(dt)
}

func (d *DismissalInteraction) began() {
	d.touches.disable(d.screen.RootView())
	for _, g := range d.settle {
		g.Stop()
	}
	d.settle = nil
	if d.ctx != nil {
		if root := d.screen.RootView(); root != nil {
			d.interrupted = root.Frame.Origin().Sub(d.presented.Origin())
		}
	}
	if !d.inProgress {
		d.inProgress = true
		if d.Dismiss != nil {
			d.Dismiss()
		}
	}
}

// progress maps a vertical translation to transition progress.
func (d *DismissalInteraction) progress(ty float64) float64 {
	if d.distance == 0 {
		return 0
	}
	return math.Min(ty, d.cfg.MaxVerticalTranslation) / d.distance
}

func (d *DismissalInteraction) changed(t Point) {
	if d.ctx == nil {
		return
	}
	p := d.progress(t.Y)
	scale := ScaleAffine(1-p, 1-p)
	switch d.cfg.Style {
	case InteractionDragAndScale:
		m := scale.Concat(TranslateAffine(t.X, t.Y))
		for _, v := range d.targets() {
			v.Transform = m
		}
	default:
		d.driver.Update(p)
		d.ctx.Container().Transform = scale
	}
}

// targets returns the views whose transform follows the gesture.
func (d *DismissalInteraction) targets() []*View {
	if d.ctx == nil {
		return nil
	}
	if d.cfg.Style != InteractionDragAndScale {
		return []*View{d.ctx.Container()}
	}
	if s := d.driver.Transition().Session(); s != nil {
		return s.Snapshots(SideFrom)
	}
	return nil
}

// reset springs every gesture transform back to identity and calls done
// once all of them arrived.
func (d *DismissalInteraction) reset(done func()) {
	targets := d.targets()
	if len(targets) == 0 {
		done()
		return
	}
	remaining := len(targets)
	d.settle = d.settle[:0]
	for _, v := range targets {
		g := TweenTransform(v, IdentityAffine, float32(d.cfg.SettleDuration), Spring(d.cfg.SpringDamping))
		g.OnDone = func() {
			remaining--
			if remaining == 0 {
				done()
			}
		}
		d.settle = append(d.settle, g)
	}
}

func (d *DismissalInteraction) cancel(velocity float64) {
	if !d.inProgress {
		return
	}
	d.reset(func() {
		d.driver.Cancel(velocity)
		d.inProgress = false
		d.touches.enable()
	})
}

func (d *DismissalInteraction) finish(velocity float64) {
	if !d.inProgress {
		return
	}
	d.driver.Finish(velocity)
	d.reset(func() {
		d.inProgress = false
		d.touches.enable()
	})
}

// --- PullToDismiss ---

// PullToDismiss turns a downward pull on a presented screen into an
// interactive dismissal. The screen's root view follows the finger; pulling
// upwards past the start is rubber-banded.
type PullToDismiss struct {
	cfg    InteractionConfig
	driver *InteractiveTransition
	screen Screen

	// Dismiss is called when a gesture begins outside an interaction. It
	// must start the dismissal and call Start with its context.
	Dismiss func()

	ctx         Context
	distance    float64
	presented   Rect
	interrupted float64
	inProgress  bool
	settle      *TweenGroup
	touches     touchGuard
}

// NewPullToDismiss creates a pull-to-dismiss interaction for screen.
func NewPullToDismiss(screen Screen, driver *InteractiveTransition, cfg InteractionConfig) *PullToDismiss {
	return &PullToDismiss{cfg: cfg, driver: driver, screen: screen}
}

// InteractionInProgress reports whether a gesture is driving a dismissal.
func (p *PullToDismiss) InteractionInProgress() bool { return p.inProgress }

// Start records the geometry of the dismissal and begins the interactive
// driver.
func (p *PullToDismiss) Start(ctx Context) error {
	from := ctx.From()
	if from == nil || from.RootView() == nil || ctx.Container() == nil {
		ctx.CompleteTransition(false)
		return newError("PullToDismiss.Start", KindParticipant, ErrNoParticipant)
	}
	p.ctx = ctx
	p.presented = ctx.FinalFrame(from)
	p.distance = ctx.Container().Frame.Height - p.presented.Y
	return p.driver.Begin(ctx)
}

// ShouldBegin reports whether a pull with the given velocity may start. The
// screen must expose a dismissal scroll view scrolled to the top and the
// finger must move down.
func (p *PullToDismiss) ShouldBegin(velocity Point) bool {
	ds, ok := p.screen.(DismissalScroller)
	if !ok {
		return false
	}
	sv := ds.DismissalScrollView()
	return sv != nil && sv.ContentOffset.Y <= 0 && velocity.Y > 0
}

// Handle consumes one pan sample. Only the vertical axis is used.
func (p *PullToDismiss) Handle(e PanEvent) {
	t := e.Translation.Y + p.interrupted
	v := e.Velocity.Y
	switch e.Phase {
	case PanBegan:
		p.began()
	case PanChanged:
		p.update(p.progress(t))
	case PanCancelled:
		p.cancel(springVelocity(-t, v))
	case PanEnded:
		if v > p.cfg.PullFinishVelocity || (t > p.distance*p.cfg.FinishFraction && v > -p.cfg.PullFinishVelocity) {
			p.finish(springVelocity(p.distance-t, v))
		} else {
			p.cancel(springVelocity(-t, v))
		}
	}
}

// Update advances the settle animation and the transition by dt seconds.
func (p *PullToDismiss) Update(dt float64) {
	if p.settle != nil {
		p.settle.Update(float32(dt))
	}
	p.driver.Tick(dt)
}

// progress maps a vertical translation to transition progress.
func (p *PullToDismiss) progress(t float64) float64 {
	if p.distance == 0 {
		return 0
	}
	prog := t / p.distance
	if prog < 0 {
		prog /= 1 + math.Abs(prog*p.cfg.RubberBand)
	}
	return prog
}

func (p *PullToDismiss) began() {
	p.touches.disable(p.screen.RootView())
	if p.settle != nil {
		p.settle.Stop()
		p.settle = nil
	}
	if p.ctx != nil {
		if root := p.screen.RootView(); root != nil {
			p.interrupted = root.Frame.Y - p.presented.Y
		}
	}
	if !p.inProgress {
		p.inProgress = true
		if p.Dismiss != nil {
			p.Dismiss()
		}
	}
}

func (p *PullToDismiss) update(progress float64) {
	if p.ctx == nil {
		return
	}
	p.driver.Update(progress)
	r := p.presented
	r.Y += p.distance * progress
	p.screen.RootView().SetFrame(r)
}

func (p *PullToDismiss) cancel(velocity float64) {
	if !p.inProgress || p.ctx == nil {
		return
	}
	p.settle = TweenFrame(p.screen.RootView(), p.presented,
		float32(p.cfg.SettleDuration), Spring(p.cfg.SpringDamping))
	p.settle.OnDone = func() {
		p.driver.Cancel(velocity)
		p.inProgress = false
	}
	p.touches.enable()
}

func (p *PullToDismiss) finish(velocity float64) {
	if !p.inProgress || p.ctx == nil {
		return
	}
	dismissed := p.presented
	dismissed.Y = p.ctx.Container().Frame.Height
	p.settle = TweenFrame(p.screen.RootView(), dismissed,
		float32(p.cfg.SettleDuration), Spring(p.cfg.SpringDamping))
	p.settle.OnDone = func() {
		p.driver.Finish(velocity)
		p.inProgress = false
		p.touches.enable()
	}
}
