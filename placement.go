package handoff

import "math"

// ParentOffsetMode selects where a child extracted from a moving parent goes
// when it slides off-screen.
type ParentOffsetMode uint8

const (
	// ParentOffsetPreserve keeps the child's offset relative to where its
	// parent ends up.
	ParentOffsetPreserve ParentOffsetMode = iota
	// ParentOffsetIgnore sends the child just past the container edge on its
	// own, as if it had never been nested.
	ParentOffsetIgnore
)

func (m ParentOffsetMode) String() string {
	if m == ParentOffsetIgnore {
		return "ignore"
	}
	return "preserve"
}

// viewOrigin is the live view's frame origin in container space.
func (s *Session) viewOrigin(tv *TransitioningView) Point {
	return tv.View.OriginIn(s.container)
}

// contentOrigin is the top of the visible content of tv's view in container
// space. Collections report their topmost visible cell, scroll views the first of
// their content below the adjusted inset, everything else its own origin.
func (s *Session) contentOrigin(tv *TransitioningView) Point {
	v := tv.View
	origin := s.viewOrigin(tv)
	var content []*View
	for _, c := range v.subviews {
		if !c.IsScrollIndicator() && !c.Hidden {
			content = append(content, c)
		}
	}
	if v.Scroll == nil || len(content) == 0 {
		return origin
	}

	if v.Class == ClassCollectionView {
		visible := v.Bounds()
		minY := math.Inf(1)
		for _, c := range content {
			f := c.Frame
			if f.MaxY() <= visible.Y || f.Y >= visible.MaxY() || f.MaxX() <= visible.X || f.X >= visible.MaxX() {
				continue
			}
			if y := c.OriginIn(s.container).Y; y < minY {
				minY = y
			}
		}
		if math.IsInf(minY, 1) {
			return origin
		}
		return Point{origin.X, minY}
	}

	minY := math.Inf(1)
	for _, c := range content {
		if y := c.OriginIn(s.container).Y; y < minY {
			minY = y
		}
	}
	top := origin.Y + v.Scroll.AdjustedContentInset().Top
	return Point{origin.X, math.Max(top, minY)}
}

// offscreenOrigin is where a moveOut participant rests out of view.
func (s *Session) offscreenOrigin(p *Participant, dir Direction) Point {
	origin := s.viewOrigin(p.View)
	size := p.View.View.Frame.Size()
	bounds := s.container.Frame.Size()

	if p.ExtractedFrom != NoHandle && s.parentOffset == ParentOffsetPreserve {
		parent := s.parts[p.ExtractedFrom].View
		parentOrigin := s.viewOrigin(parent)
		parentSize := parent.View.Frame.Size()
		diff := origin.Sub(parentOrigin)
		switch dir {
		case DirectionUp:
			origin.Y = -parentSize.Height + diff.Y
		case DirectionDown:
			origin.Y = bounds.Height + diff.Y
		case DirectionLeft:
			origin.X = -parentSize.Width + diff.X
		case DirectionRight:
			origin.X = bounds.Width + diff.X
		}
		return origin
	}

	switch dir {
	case DirectionUp:
		origin.Y = -size.Height
	case DirectionDown:
		origin.Y = bounds.Height
	case DirectionLeft:
		origin.X = -size.Width
	case DirectionRight:
		origin.X = bounds.Width
	}
	return origin
}

// pagedOrigin is the live origin shifted one container size towards dir.
func (s *Session) pagedOrigin(tv *TransitioningView, dir Direction) Point {
	origin := s.viewOrigin(tv)
	bounds := s.container.Frame.Size()
	switch dir {
	case DirectionUp:
		origin.Y -= bounds.Height
	case DirectionDown:
		origin.Y += bounds.Height
	case DirectionLeft:
		origin.X -= bounds.Width
	case DirectionRight:
		origin.X += bounds.Width
	}
	return origin
}

// --- Initial placement ---

func (s *Session) positionFrom() {
	for _, h := range s.sides[SideFrom] {
		p := s.parts[h]
		p.Snapshot.SetOrigin(s.viewOrigin(p.View))
	}
	for _, h := range s.sides[SideFrom] {
		p := s.parts[h]
		if p.Mask == NoHandle {
			continue
		}
		s.placeMask(p, s.viewOrigin(s.parts[p.Mask].View))
	}
}

func (s *Session) positionTo() {
	for _, h := range s.sides[SideTo] {
		p := s.parts[h]
		p.Snapshot.SetOrigin(s.toStartOrigin(p, nil))
	}
	for _, h := range s.sides[SideTo] {
		p := s.parts[h]
		if p.Mask == NoHandle {
			continue
		}
		s.placeMask(p, s.toStartOrigin(s.parts[p.Mask], nil))
	}
}

// placeMask puts p's mask snapshot at maskOrigin (container space), sized
// like the live mask view.
func (s *Session) placeMask(p *Participant, maskOrigin Point) {
	p.Snapshot.placeMaskAt(maskOrigin, s.parts[p.Mask].View.View.Frame.Size())
}

// toStartOrigin is where a destination snapshot starts. visiting guards the
// moveWith parent chain against cycles.
func (s *Session) toStartOrigin(p *Participant, visiting map[Handle]bool) Point {
	tv := p.View
	switch {
	case tv.Style.Kind == StyleMoveOut:
		return s.offscreenOrigin(p, tv.Style.Direction)
	case tv.Style.Kind == StylePageOut:
		return s.pagedOrigin(tv, tv.Style.Direction)
	case tv.Style.IsPaired() && p.Partner != NoHandle:
		return s.toMatchingOrigin(s.parts[p.Partner].View, tv)
	case tv.Style.Kind == StyleMoveWith && p.Parent != NoHandle:
		position := s.viewOrigin(tv)
		if visiting == nil {
			visiting = make(map[Handle]bool)
		}
		if visiting[p.Handle] {
			return position
		}
		visiting[p.Handle] = true
		parent := s.parts[p.Parent]
		final := s.finalParticipant(parent)
		if final == nil {
			return position
		}
		start := s.toStartOrigin(parent, visiting)
		delta := s.viewOrigin(final.View).Sub(start)
		return position.Sub(delta)
	}
	return s.viewOrigin(tv)
}

// toMatchingOrigin aligns the destination's content with the source's
// content at the start of the transition.
func (s *Session) toMatchingOrigin(from, to *TransitioningView) Point {
	fromOrigin := s.viewOrigin(from)
	fromContent := s.contentOrigin(from)
	toDiff := s.viewOrigin(to).Y - s.contentOrigin(to).Y
	return Point{fromOrigin.X, fromContent.Y + toDiff}
}

// fromMatchingOrigin aligns the source's content with the destination's
// content at the end of the transition.
func (s *Session) fromMatchingOrigin(from, to *TransitioningView) Point {
	fromDiff := s.contentOrigin(from).Y - s.viewOrigin(from).Y
	return Point{s.viewOrigin(to).X, s.contentOrigin(to).Y - fromDiff}
}

// finalParticipant returns the destination participant whose live layout
// defines where p ends: the partner of a paired participant, or p itself
// for destination participants that settle in place.
func (s *Session) finalParticipant(p *Participant) *Participant {
	if p.View.Style.IsPaired() {
		if p.Side == SideTo {
			return p
		}
		if p.Partner != NoHandle {
			return s.parts[p.Partner]
		}
		return nil
	}
	if p.Side != SideTo {
		return nil
	}
	switch p.View.Style.Kind {
	case StyleFade, StyleMoveOut, StylePageOut, StyleMoveWith:
		return p
	}
	return nil
}

// --- Final placement ---

func (s *Session) commitTo(handles []Handle) {
	var touched []Handle
	for _, h := range handles {
		final := s.finalParticipant(s.parts[h])
		if final == nil {
			continue
		}
		tv := final.View
		if tv.Style.Kind == StyleMoveTo {
			if tv.Style.CrossFades {
				final.Snapshot.Alpha = 1
			} else {
				final.Snapshot.Alpha = 0
			}
		} else {
			final.Snapshot.Alpha = 1
		}
		final.Snapshot.SetFrame(RectOf(s.viewOrigin(tv), tv.View.Frame.Size()))
		touched = append(touched, final.Handle)
	}
	s.placeToMasks(touched)
}

// placeToMasks syncs the masks of destination participants masked by any
// of handles with the masking snapshot's current frame.
func (s *Session) placeToMasks(handles []Handle) {
	s.syncMasks(SideTo, handles)
}

// syncMasks moves every mask on side whose masking participant is in
// handles onto that participant's snapshot.
func (s *Session) syncMasks(side Side, handles []Handle) {
	for _, h := range handles {
		src := s.parts[h]
		if src.Side != side {
			continue
		}
		for _, mh := range s.sides[side] {
			masked := s.parts[mh]
			if masked.Mask != h {
				continue
			}
			masked.Snapshot.placeMaskAt(src.Snapshot.Frame.Origin(), src.Snapshot.Frame.Size())
		}
	}
}

func (s *Session) commitFrom(handles []Handle) {
	for _, h := range handles {
		p := s.parts[h]
		if p.Side != SideFrom {
			continue
		}
		start := p.Snapshot.Frame.Origin()
		s.commitFromParticipant(p)
		if delta := p.Snapshot.Frame.Origin().Sub(start); delta != (Point{}) {
			s.shiftFollowers(p.Handle, delta, map[Handle]bool{p.Handle: true})
		}
	}
	s.syncMasks(SideFrom, handles)
}

func (s *Session) commitFromParticipant(p *Participant) {
	tv := p.View
	snap := p.Snapshot
	if tv.Style.IsPaired() {
		if p.Partner == NoHandle {
			return
		}
		to := s.parts[p.Partner]
		origin := s.fromMatchingOrigin(tv, to.View)
		snap.Alpha = 0
		if tv.Style.Kind == StyleMatch {
			radius := to.View.View.CornerRadius()
			snap.SetCornerRadius(radius)
			snap.SetFrame(RectOf(origin, to.View.View.Frame.Size()))
			to.Snapshot.SetCornerRadius(radius)
		} else {
			snap.SetFrame(RectOf(origin, tv.View.Frame.Size()))
		}
		return
	}

	switch tv.Style.Kind {
	case StyleMoveOut:
		snap.SetFrame(RectOf(s.offscreenOrigin(p, tv.Style.Direction), tv.View.Frame.Size()))
		snap.Alpha = 1 - tv.Style.Alpha.AlphaChange()
	case StylePageOut:
		snap.SetFrame(RectOf(s.pagedOrigin(tv, tv.Style.Direction), tv.View.Frame.Size()))
		snap.Alpha = 1 - tv.Style.Alpha.AlphaChange()
	case StyleMoveWith:
		if tv.Style.CrossFades {
			snap.Alpha = 0
		} else {
			snap.Alpha = 1
		}
	case StyleFade:
		snap.Alpha = 0
	}
}

// shiftFollowers moves every source participant following parent by delta,
// then their own followers, to any depth.
func (s *Session) shiftFollowers(parent Handle, delta Point, seen map[Handle]bool) {
	for _, h := range s.sides[SideFrom] {
		f := s.parts[h]
		if f.Parent != parent || seen[h] {
			continue
		}
		seen[h] = true
		f.Snapshot.SetOrigin(f.Snapshot.Frame.Origin().Add(delta))
		s.shiftFollowers(h, delta, seen)
	}
}
