package handoff

import (
	"fmt"
	"log/slog"
	"sort"
)

// Side tells which screen a participant belongs to.
type Side uint8

const (
	SideFrom Side = iota
	SideTo
)

func (s Side) String() string {
	if s == SideTo {
		return "to"
	}
	return "from"
}

// Handle is the stable index of a participant inside a session. Handles
// follow drawing order: a lower handle is drawn below a higher one.
type Handle int

// NoHandle marks an absent reference.
const NoHandle Handle = -1

// SessionState is the lifecycle state of a Session.
type SessionState uint8

const (
	StateInitialized SessionState = iota
	StateArmed
	StateCommitted
	StateTornDown
	StateSuperseded
)

func (s SessionState) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateArmed:
		return "armed"
	case StateCommitted:
		return "committed"
	case StateTornDown:
		return "torn down"
	case StateSuperseded:
		return "superseded"
	default:
		return fmt.Sprintf("SessionState(%d)", s)
	}
}

// Participant is one expanded transitioning view of a session together with
// its snapshot and resolved references.
type Participant struct {
	Handle   Handle
	Side     Side
	View     *TransitioningView
	Snapshot *View

	// Mask is the same-side participant clipping this one.
	Mask Handle
	// Parent is the same-side participant a moveWith participant follows.
	Parent Handle
	// ExtractedFrom is the same-side participant of the same role whose view
	// is this participant's superview.
	ExtractedFrom Handle
	// Partner is the match/moveTo counterpart on the other side.
	Partner Handle
}

// Group is a set of participants sharing one timing window.
type Group struct {
	Delay    float64
	Duration float64
	Handles  []Handle
}

// SessionParams describes the participants of one transition.
type SessionParams struct {
	From         []*TransitioningView
	To           []*TransitioningView
	FromOverlays []*TransitioningView
	ToOverlays   []*TransitioningView

	// Container receives the snapshots. Required.
	Container  *View
	Presenting bool

	ParentOffset ParentOffsetMode
	Cloner       *Cloner
}

type alphaRecord struct {
	view  *View
	alpha float64
}

// Session owns the snapshots of one transition and computes their start and
// end appearance. Build it with NewSession, then Arm it once and Commit each
// timing group; TearDown removes every snapshot and restores hidden views.
type Session struct {
	container    *View
	presenting   bool
	parentOffset ParentOffsetMode

	parts  []*Participant
	sides  [2][]Handle
	hidden []alphaRecord
	state  SessionState
}

// NewSession expands both sides, orders every participant by priority,
// clones them into the container in that order and places each snapshot at
// its starting position.
func NewSession(p SessionParams) (*Session, error) {
	if p.Container == nil {
		return nil, newError("NewSession", KindContainer, ErrNoContainer)
	}
	timer := newStageTimer("NewSession")

	type entry struct {
		tv   *TransitioningView
		side Side
	}
	var entries []entry
	for _, tv := range append(Expand(p.From, true), p.FromOverlays...) {
		entries = append(entries, entry{tv, SideFrom})
	}
	for _, tv := range append(Expand(p.To, false), p.ToOverlays...) {
		entries = append(entries, entry{tv, SideTo})
	}
	timer.mark("expand")

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].tv.Priority < entries[j].tv.Priority
	})

	s := &Session{
		container:    p.Container,
		presenting:   p.Presenting,
		parentOffset: p.ParentOffset,
		parts:        make([]*Participant, 0, len(entries)),
	}
	for i, e := range entries {
		snap := p.Cloner.Clone(e.tv.View, e.tv.Config.HideSubviews)
		p.Container.AddSubview(snap)
		h := Handle(i)
		s.parts = append(s.parts, &Participant{
			Handle:        h,
			Side:          e.side,
			View:          e.tv,
			Snapshot:      snap,
			Mask:          NoHandle,
			Parent:        NoHandle,
			ExtractedFrom: NoHandle,
			Partner:       NoHandle,
		})
		s.sides[e.side] = append(s.sides[e.side], h)
	}
	timer.mark("clone")

	s.resolve()
	s.attachMasks(p.Cloner)
	s.positionFrom()
	s.positionTo()
	timer.mark("position")
	return s, nil
}

// resolve turns the pointer references of every participant into handles.
func (s *Session) resolve() {
	for _, p := range s.parts {
		tv := p.View
		if m := tv.Config.Mask; m != nil {
			p.Mask = s.find(p.Side, m)
		}
		if tv.Style.Kind == StyleMoveWith && tv.Style.Parent != nil {
			p.Parent = s.find(p.Side, tv.Style.Parent)
		}
		if sv := tv.View.Superview; sv != nil {
			for _, h := range s.sides[p.Side] {
				q := s.parts[h]
				if q != p && q.View.View == sv && q.View.Style.SameKind(tv.Style) {
					p.ExtractedFrom = h
					break
				}
			}
		}
		if tv.Style.IsPaired() {
			p.Partner = s.findPartner(p)
		}
	}
}

// find returns the first participant on side declared by ref.
func (s *Session) find(side Side, ref *TransitioningView) Handle {
	ref = ref.origin()
	for _, h := range s.sides[side] {
		if s.parts[h].View.origin() == ref {
			return h
		}
	}
	return NoHandle
}

// findPartner returns the first participant on the other side with the same
// role and ID.
func (s *Session) findPartner(p *Participant) Handle {
	other := SideTo
	if p.Side == SideTo {
		other = SideFrom
	}
	for _, h := range s.sides[other] {
		q := s.parts[h].View
		if q.Style.Kind == p.View.Style.Kind && q.Style.ID == p.View.Style.ID {
			return h
		}
	}
	return NoHandle
}

// attachMasks clones the view of every resolved mask and attaches it to the
// masked snapshot. Unresolved masks are skipped.
func (s *Session) attachMasks(c *Cloner) {
	for _, p := range s.parts {
		if p.View.Config.Mask == nil {
			continue
		}
		if p.Mask == NoHandle {
			Logger().Warn("mask skipped: reference is not a participant",
				slog.String("view", p.View.View.Name),
				slog.String("side", p.Side.String()))
			continue
		}
		m := c.Clone(s.parts[p.Mask].View.View, s.parts[p.Mask].View.Config.HideSubviews)
		m.Alpha = 1
		m.Hidden = false
		p.Snapshot.SetMask(m)
	}
}

// --- Queries ---

// State returns the lifecycle state.
func (s *Session) State() SessionState { return s.state }

// Container returns the view holding the snapshots.
func (s *Session) Container() *View { return s.container }

// Len returns the number of participants.
func (s *Session) Len() int { return len(s.parts) }

// Participant returns the participant behind h, or nil.
func (s *Session) Participant(h Handle) *Participant {
	if h < 0 || int(h) >= len(s.parts) {
		return nil
	}
	return s.parts[h]
}

// Participants returns every participant in drawing order. The returned
// slice MUST NOT be mutated by the caller.
func (s *Session) Participants() []*Participant { return s.parts }

// Snapshot returns the snapshot of h, or nil.
func (s *Session) Snapshot(h Handle) *View {
	if p := s.Participant(h); p != nil {
		return p.Snapshot
	}
	return nil
}

// Handles returns the handles of one side in drawing order.
func (s *Session) Handles(side Side) []Handle {
	return s.sides[side]
}

// Views returns the expanded transitioning views of one side in drawing
// order; index i matches Snapshots(side)[i].
func (s *Session) Views(side Side) []*TransitioningView {
	out := make([]*TransitioningView, len(s.sides[side]))
	for i, h := range s.sides[side] {
		out[i] = s.parts[h].View
	}
	return out
}

// Snapshots returns the snapshots of one side in drawing order.
func (s *Session) Snapshots(side Side) []*View {
	out := make([]*View, len(s.sides[side]))
	for i, h := range s.sides[side] {
		out[i] = s.parts[h].Snapshot
	}
	return out
}

// Groups returns the participants grouped by delay and, within one delay,
// by duration, in ascending order of both.
func (s *Session) Groups() []Group {
	var groups []Group
	for _, p := range s.parts {
		d, l := p.View.Config.delay, p.View.Config.duration
		found := false
		for i := range groups {
			if groups[i].Delay == d && groups[i].Duration == l {
				groups[i].Handles = append(groups[i].Handles, p.Handle)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, Group{Delay: d, Duration: l, Handles: []Handle{p.Handle}})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Delay != groups[j].Delay {
			return groups[i].Delay < groups[j].Delay
		}
		return groups[i].Duration < groups[j].Duration
	})
	return groups
}

// --- Lifecycle ---

// Arm sets the appearance every snapshot has at the first frame: paired
// destination snapshots take over their source's frame and corner radius,
// and every destination snapshot starts at 1 - alphaChange.
func (s *Session) Arm() error {
	if s.state != StateInitialized {
		return newError("Session.Arm", KindUnknown, fmt.Errorf("%w: state %s", ErrSessionRetired, s.state))
	}
	for _, h := range s.sides[SideFrom] {
		p := s.parts[h]
		if !p.View.Style.IsPaired() || p.Partner == NoHandle {
			continue
		}
		to := s.parts[p.Partner]
		to.Snapshot.SetCornerRadius(p.View.View.CornerRadius())
		to.Snapshot.SetFrame(p.Snapshot.Frame)
	}
	s.placeToMasks(s.sides[SideTo])
	for _, h := range s.sides[SideTo] {
		p := s.parts[h]
		p.Snapshot.Alpha = 1 - p.View.AlphaChange()
	}
	s.state = StateArmed
	return nil
}

// Commit applies the final appearance of the participants in handles. It is
// called once per timing group, from inside an animation block.
func (s *Session) Commit(handles []Handle) {
	switch s.state {
	case StateArmed, StateCommitted:
	default:
		Logger().Warn("commit ignored", slog.String("state", s.state.String()))
		return
	}
	s.commitTo(handles)
	s.commitFrom(handles)
	s.state = StateCommitted
}

// HideSources records the opacity of each view and hides it. TearDown
// restores the recorded values. A view already recorded keeps its first
// recorded opacity.
func (s *Session) HideSources(views ...*View) {
	for _, v := range views {
		if v == nil {
			continue
		}
		s.RecordAlpha(v)
		v.Alpha = 0
	}
}

// RecordAlpha records the opacity of each view without changing it, so that
// TearDown restores it.
func (s *Session) RecordAlpha(views ...*View) {
	for _, v := range views {
		if v == nil || s.recorded(v) {
			continue
		}
		s.hidden = append(s.hidden, alphaRecord{v, v.Alpha})
	}
}

func (s *Session) recorded(v *View) bool {
	for _, r := range s.hidden {
		if r.view == v {
			return true
		}
	}
	return false
}

// TearDown removes every snapshot from the container and restores the
// recorded opacities. Calling it again has no effect.
func (s *Session) TearDown() {
	if s.state == StateTornDown || s.state == StateSuperseded {
		return
	}
	s.release()
	s.state = StateTornDown
}

// Supersede retires a session that is being replaced by a fresh one. Its
// snapshots are removed and recorded opacities restored, after which the
// session ignores Commit and TearDown.
func (s *Session) Supersede() {
	if s.state == StateTornDown || s.state == StateSuperseded {
		return
	}
	s.release()
	s.state = StateSuperseded
	Logger().Warn("session superseded", slog.Int("participants", len(s.parts)))
}

func (s *Session) release() {
	for _, p := range s.parts {
		p.Snapshot.Dispose()
	}
	for i := len(s.hidden) - 1; i >= 0; i-- {
		s.hidden[i].view.Alpha = s.hidden[i].alpha
	}
	s.hidden = nil
}

// HoldsSnapshots reports whether container still has snapshot children.
func HoldsSnapshots(container *View) bool {
	for _, c := range container.subviews {
		if c.IsSnapshot() {
			return true
		}
	}
	return false
}
