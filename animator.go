package handoff

import (
	"log/slog"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Position names a point of the timeline an animator finished at.
type Position uint8

const (
	PositionEnd Position = iota
	PositionStart
	PositionCurrent
)

func (p Position) String() string {
	switch p {
	case PositionStart:
		return "start"
	case PositionCurrent:
		return "current"
	default:
		return "end"
	}
}

// AnimatorState is the run state of an Animator.
type AnimatorState uint8

const (
	// AnimatorInactive: not started yet, or finished.
	AnimatorInactive AnimatorState = iota
	// AnimatorActive: started, running or paused.
	AnimatorActive
	// AnimatorStopped: stopped mid-flight, waiting for Finish.
	AnimatorStopped
)

func (s AnimatorState) String() string {
	switch s {
	case AnimatorActive:
		return "active"
	case AnimatorStopped:
		return "stopped"
	default:
		return "inactive"
	}
}

type animationBlock struct {
	fn       func()
	delay    float64
	duration float64
}

// track animates one float64 field between two values inside a slice of the
// timeline.
type track struct {
	field    *float64
	from, to float64
	start    float64
	length   float64
	tween    *gween.Tween
	target   *View
}

type fieldValue struct {
	field *float64
	value float64
}

// Animator is an interruptible timeline made of delayed sub-animations.
//
// Animation blocks are plain functions that set the model values of the
// observed views. On first start the animator runs every block in order of
// delay, records what each one changed as a tween confined to that block's
// slice of the timeline, and restores the values it found. Update(dt) then
// drives the timeline. There is no global animation manager; the host calls
// Update each frame.
type Animator struct {
	duration float64
	curve    ease.TweenFunc

	blocks      []animationBlock
	completions []func(Position)
	observed    []*View

	armed  []fieldValue
	tracks []*track

	elapsed      float64
	running      bool
	reversed     bool
	materialized bool
	done         bool
	superseded   bool
	state        AnimatorState
}

// NewAnimator creates an animator lasting duration seconds. A nil curve is
// linear.
func NewAnimator(duration float64, curve ease.TweenFunc) *Animator {
	if curve == nil {
		curve = ease.Linear
	}
	if duration < 0 {
		duration = 0
	}
	return &Animator{duration: duration, curve: curve}
}

// Duration returns the total duration in seconds.
func (a *Animator) Duration() float64 { return a.duration }

// State returns the run state.
func (a *Animator) State() AnimatorState { return a.state }

// IsRunning reports whether Update advances the timeline.
func (a *Animator) IsRunning() bool { return a.running }

// IsReversed reports whether the timeline runs backwards.
func (a *Animator) IsReversed() bool { return a.reversed }

// IsSuperseded reports whether the animator was replaced by another one.
func (a *Animator) IsSuperseded() bool { return a.superseded }

// AddAnimations schedules fn in the [delay, delay+duration] slice of the
// timeline, both given as fractions of the total duration. Blocks added
// after the animator started are ignored.
func (a *Animator) AddAnimations(fn func(), delayFactor, durationFactor float64) {
	if a.materialized {
		Logger().Warn("animation block added after start ignored")
		return
	}
	delayFactor = clamp01(delayFactor)
	durationFactor = clamp01(durationFactor)
	if delayFactor+durationFactor > 1 {
		durationFactor = 1 - delayFactor
	}
	a.blocks = append(a.blocks, animationBlock{fn: fn, delay: delayFactor, duration: durationFactor})
}

// AddCompletion registers fn to run once when the animator finishes.
func (a *Animator) AddCompletion(fn func(Position)) {
	a.completions = append(a.completions, fn)
}

// Observe adds views whose frame, opacity and corner radius are animated.
// Masks of observed views are observed too.
func (a *Animator) Observe(views ...*View) {
	a.observed = append(a.observed, views...)
}

// Start runs the timeline forward, or backward when reversed.
func (a *Animator) Start() {
	if a.done {
		return
	}
	a.materialize()
	a.running = true
	a.state = AnimatorActive
}

// Pause stops advancing without finishing. The animator can be scrubbed
// with SetFractionComplete while paused.
func (a *Animator) Pause() {
	if a.done {
		return
	}
	a.materialize()
	a.running = false
	a.state = AnimatorActive
}

// Continue resumes a paused animator.
func (a *Animator) Continue() {
	a.Start()
}

// SetReversed sets the direction of the timeline.
func (a *Animator) SetReversed(reversed bool) {
	a.reversed = reversed
}

// FractionComplete returns the position of the timeline in [0,1].
func (a *Animator) FractionComplete() float64 {
	if a.duration <= 0 {
		if a.done {
			return 1
		}
		return 0
	}
	return a.elapsed / a.duration
}

// SetFractionComplete moves the timeline to f in [0,1] and applies it.
func (a *Animator) SetFractionComplete(f float64) {
	if a.done {
		return
	}
	a.materialize()
	a.elapsed = clamp01(f) * a.duration
	a.apply()
}

// Update advances a running timeline by dt seconds and finishes it when it
// reaches either end.
func (a *Animator) Update(dt float64) {
	if a.done || !a.running {
		return
	}
	if a.reversed {
		a.elapsed -= dt
	} else {
		a.elapsed += dt
	}
	switch {
	case a.reversed && a.elapsed <= 0:
		a.Finish(PositionStart)
	case !a.reversed && a.elapsed >= a.duration:
		a.Finish(PositionEnd)
	default:
		a.apply()
	}
}

// Stop halts the timeline where it is. Call Finish to complete it.
func (a *Animator) Stop() {
	if a.done {
		return
	}
	a.running = false
	a.state = AnimatorStopped
}

// Finish moves the timeline to pos, applies it and runs the completions.
// Completions run at most once over the animator's lifetime.
func (a *Animator) Finish(pos Position) {
	if a.done {
		return
	}
	a.materialize()
	switch pos {
	case PositionEnd:
		a.elapsed = a.duration
	case PositionStart:
		a.elapsed = 0
	}
	a.apply()
	a.running = false
	a.done = true
	a.state = AnimatorInactive
	for _, fn := range a.completions {
		fn(pos)
	}
}

// Supersede retires the animator without running its completions.
func (a *Animator) Supersede() {
	if a.done {
		return
	}
	a.running = false
	a.done = true
	a.superseded = true
	a.state = AnimatorInactive
}

// --- Internals ---

// fieldsOf lists the animatable fields of v and its mask.
func fieldsOf(v *View, out []*float64) []*float64 {
	out = append(out,
		&v.Frame.X, &v.Frame.Y, &v.Frame.Width, &v.Frame.Height,
		&v.Alpha, &v.Layer.CornerRadius)
	if v.mask != nil {
		out = append(out,
			&v.mask.Frame.X, &v.mask.Frame.Y, &v.mask.Frame.Width, &v.mask.Frame.Height,
			&v.mask.Alpha)
	}
	return out
}

func (a *Animator) fields() ([]*float64, []*View) {
	var fields []*float64
	var owners []*View
	for _, v := range a.observed {
		n := len(fields)
		fields = fieldsOf(v, fields)
		for i := n; i < len(fields); i++ {
			owners = append(owners, v)
		}
	}
	return fields, owners
}

// materialize turns the animation blocks into tracks.
func (a *Animator) materialize() {
	if a.materialized {
		return
	}
	a.materialized = true

	fields, owners := a.fields()
	a.armed = make([]fieldValue, len(fields))
	for i, f := range fields {
		a.armed[i] = fieldValue{f, *f}
	}

	sort.SliceStable(a.blocks, func(i, j int) bool {
		return a.blocks[i].delay < a.blocks[j].delay
	})
	before := make([]float64, len(fields))
	for _, b := range a.blocks {
		for i, f := range fields {
			before[i] = *f
		}
		b.fn()
		for i, f := range fields {
			if *f == before[i] {
				continue
			}
			start := b.delay * a.duration
			length := b.duration * a.duration
			t := &track{
				field:  f,
				from:   before[i],
				to:     *f,
				start:  start,
				length: length,
				target: owners[i],
			}
			if length > 0 {
				t.tween = gween.New(0, 1, float32(length), a.curve)
			}
			a.tracks = append(a.tracks, t)
		}
	}

	for _, fv := range a.armed {
		*fv.field = fv.value
	}
	a.sync()
	if globalDebug {
		Logger().Debug("animator materialized",
			slog.Int("blocks", len(a.blocks)),
			slog.Int("tracks", len(a.tracks)))
	}
}

// apply writes the armed values and then every track at the current time.
// Tracks are applied in block order so later blocks start from where
// earlier ones left their field.
func (a *Animator) apply() {
	for _, fv := range a.armed {
		*fv.field = fv.value
	}
	for _, t := range a.tracks {
		if t.target != nil && t.target.IsDisposed() {
			continue
		}
		local := a.elapsed - t.start
		switch {
		case local < 0:
			continue
		case local >= t.length:
			*t.field = t.to
		case local == 0:
			*t.field = t.from
		default:
			eased, _ := t.tween.Set(float32(local))
			*t.field = t.from + (t.to-t.from)*float64(eased)
		}
	}
	a.sync()
}

// sync propagates the written fields to layers, wrapper content and masks.
func (a *Animator) sync() {
	for _, v := range a.observed {
		if v.IsDisposed() {
			continue
		}
		syncAnimated(v)
		if v.mask != nil {
			syncAnimated(v.mask)
		}
	}
}

func syncAnimated(v *View) {
	v.Layer.Frame = v.Frame
	if v.sizing != sizingNone {
		v.layoutSubviews()
		v.SetCornerRadius(v.Layer.CornerRadius)
	}
}
