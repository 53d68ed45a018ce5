package handoff

// GestureTarget consumes pan samples. DismissalInteraction and PullToDismiss
// implement it.
type GestureTarget interface {
	Handle(e PanEvent)
}

// GestureQueue holds synthetic pan samples and delivers one per frame.
// It lets scripted runs and tests drive the dismiss interpreters exactly as
// a touch screen would.
type GestureQueue struct {
	// FrameDuration is the time between samples in seconds, used to derive
	// velocities. Zero means 1/60.
	FrameDuration float64

	queue []PanEvent
}

func (q *GestureQueue) frameDuration() float64 {
	if q.FrameDuration <= 0 {
		return 1.0 / 60
	}
	return q.FrameDuration
}

// Len returns the number of pending samples.
func (q *GestureQueue) Len() int { return len(q.queue) }

// InjectPan queues a full pan from one point to another: a began sample,
// linearly interpolated changed samples over frames-2 intermediate frames
// and an ended sample at the destination. Translations are relative to
// from. Minimum frames is 2 (began + ended).
func (q *GestureQueue) InjectPan(from, to Point, frames int) {
	q.injectPan(from, to, frames, PanEnded)
}

// InjectCancelledPan is InjectPan ending with a cancelled sample.
func (q *GestureQueue) InjectCancelledPan(from, to Point, frames int) {
	q.injectPan(from, to, frames, PanCancelled)
}

func (q *GestureQueue) injectPan(from, to Point, frames int, end PanPhase) {
	if frames < 2 {
		frames = 2
	}
	total := to.Sub(from)
	// Every step covers the same distance, so the velocity is constant.
	step := 1 / float64(frames-1)
	dt := q.frameDuration()
	velocity := Point{total.X * step / dt, total.Y * step / dt}

	q.queue = append(q.queue, PanEvent{Phase: PanBegan, Velocity: velocity})
	for i := 1; i < frames-1; i++ {
		t := float64(i) * step
		q.queue = append(q.queue, PanEvent{
			Phase:       PanChanged,
			Translation: Point{total.X * t, total.Y * t},
			Velocity:    velocity,
		})
	}
	q.queue = append(q.queue, PanEvent{Phase: end, Translation: total, Velocity: velocity})
}

// Inject queues a single sample.
func (q *GestureQueue) Inject(e PanEvent) {
	q.queue = append(q.queue, e)
}

// Step pops one sample and hands it to target. It reports whether a sample
// was delivered.
func (q *GestureQueue) Step(target GestureTarget) bool {
	if len(q.queue) == 0 {
		return false
	}
	e := q.queue[0]
	copy(q.queue, q.queue[1:])
	q.queue = q.queue[:len(q.queue)-1]
	target.Handle(e)
	return true
}
