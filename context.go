package handoff

// Context is what a transition needs from the driver that runs it: the
// shared container, the two screens and the channel to report completion.
type Context interface {
	Container() *View
	From() Screen
	To() Screen
	// FinalFrame is the frame s occupies once the transition completes.
	FinalFrame(s Screen) Rect
	CompleteTransition(didComplete bool)
	WasCancelled() bool

	UpdateInteractiveTransition(progress float64)
	CancelInteractiveTransition()
	FinishInteractiveTransition()
}

// TransitionContext is a basic Context. The zero value is not usable; build
// one with NewTransitionContext.
type TransitionContext struct {
	container *View
	from, to  Screen

	// OnComplete, if set, is called once with the reported outcome.
	OnComplete func(didComplete bool)

	progress    float64
	interactive bool
	cancelled   bool
	completed   bool
	didComplete bool
}

// NewTransitionContext creates a context moving from one screen to another
// inside container.
func NewTransitionContext(container *View, from, to Screen) *TransitionContext {
	return &TransitionContext{container: container, from: from, to: to}
}

func (c *TransitionContext) Container() *View { return c.container }
func (c *TransitionContext) From() Screen { return c.from }
func (c *TransitionContext) To() Screen { return c.to }

// FinalFrame fills the container.
func (c *TransitionContext) FinalFrame(Screen) Rect {
	if c.container == nil {
		return Rect{}
	}
	return Rect{0, 0, c.container.Frame.Width, c.container.Frame.Height}
}

// CompleteTransition records the outcome. A cancelled transition removes
// the destination screen from the container. Only the first report counts.
func (c *TransitionContext) CompleteTransition(didComplete bool) {
	if c.completed {
		return
	}
	c.completed = true
	c.didComplete = didComplete
	if !didComplete && c.to != nil {
		if root := c.to.RootView(); root != nil && root.Superview == c.container {
			root.RemoveFromSuperview()
		}
	}
	if c.OnComplete != nil {
		c.OnComplete(didComplete)
	}
}

// WasCancelled reports whether an interactive transition was cancelled.
func (c *TransitionContext) WasCancelled() bool { return c.cancelled }

// IsCompleted reports whether completion was reported, and its outcome.
func (c *TransitionContext) IsCompleted() (completed, didComplete bool) {
	return c.completed, c.didComplete
}

// IsInteractive reports whether an interactive update was received.
func (c *TransitionContext) IsInteractive() bool { return c.interactive }

// Progress returns the last interactive progress.
func (c *TransitionContext) Progress() float64 { return c.progress }

func (c *TransitionContext) UpdateInteractiveTransition(progress float64) {
	c.interactive = true
	c.progress = progress
}

func (c *TransitionContext) CancelInteractiveTransition() { c.cancelled = true }

func (c *TransitionContext) FinishInteractiveTransition() { c.cancelled = false }
