package handoff

// Delegate builds the transitions of a presentation from one Config.
type Delegate struct {
	cfg    *Config
	cloner *Cloner
}

// NewDelegate returns a delegate for cfg. A nil cfg uses DefaultConfig.
func NewDelegate(cfg *Config) *Delegate {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Delegate{cfg: cfg}
}

// WithCloner makes every transition clone with c.
func (d *Delegate) WithCloner(c *Cloner) *Delegate {
	d.cloner = c
	return d
}

// Config returns the delegate's configuration.
func (d *Delegate) Config() *Config { return d.cfg }

// PresentTransition returns the transition that shows a screen.
func (d *Delegate) PresentTransition() *Transition {
	return d.transition(true, d.cfg.Presentation)
}

// DismissTransition returns the transition that hides a screen.
func (d *Delegate) DismissTransition() *Transition {
	return d.transition(false, d.cfg.Dismissal)
}

// InteractiveDismissal returns a gesture-driven dismissal.
func (d *Delegate) InteractiveDismissal() *InteractiveTransition {
	t := d.transition(false, d.cfg.Dismissal)
	return NewInteractiveTransition(t)
}

func (d *Delegate) transition(presenting bool, timing TimingConfig) *Transition {
	return NewTransition(TransitionOptions{
		Presenting:       presenting,
		Duration:         timing.Duration,
		Curve:            timing.Easing(),
		InteractiveStart: d.cfg.InteractiveStart,
		ParentOffset:     d.cfg.ParentOffsetMode(),
		Cloner:           d.cloner,
	})
}
