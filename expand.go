package handoff

import "sort"

// Expand flattens composite declarations into one participant per moving
// view.
//
// A moveOut or pageOut declaration whose view has visible children becomes
// the container itself (snapshotted without subviews) followed by one
// participant per child, ordered along the movement direction and reversed
// on the destination side. Each child starts one cascade step after the
// previous one. A splitContent declaration becomes two pageOut groups moving
// away from its center view, plus the center view as a fade when kept; the
// container itself is not emitted. Everything else passes through.
//
// Views without eligible children are returned as the same pointer, and the
// output of Expand expands to itself.
func Expand(declared []*TransitioningView, fromSide bool) []*TransitioningView {
	out := make([]*TransitioningView, 0, len(declared))
	for _, tv := range declared {
		if tv == nil || tv.View == nil {
			continue
		}
		if tv.expanded {
			out = append(out, tv)
			continue
		}
		children := eligibleChildren(tv.View)
		if len(children) == 0 {
			out = append(out, tv)
			continue
		}

		switch tv.Style.Kind {
		case StyleMoveOut, StylePageOut:
			container := &TransitioningView{
				View:     tv.View,
				Style:    tv.Style,
				Priority: tv.Priority,
				Config:   NewViewConfig(tv.Config.duration, tv.Config.delay, true, tv.Config.Mask),
				source:   tv,
				expanded: true,
			}
			out = append(out, container)
			out = append(out, extractChildren(children, tv, container, tv.Style, fromSide)...)
		case StyleSplitContent:
			out = append(out, splitChildren(children, tv, fromSide)...)
		default:
			out = append(out, tv)
		}
	}
	return out
}

// eligibleChildren returns the subviews that can be extracted: visible ones
// that are not scroll indicators.
func eligibleChildren(v *View) []*View {
	var out []*View
	for _, c := range v.subviews {
		if c.IsScrollIndicator() || c.Hidden || c.Alpha <= 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// extractChildren emits one participant per child with style, ordered along
// the style's direction and staggered by the cascade delay.
func extractChildren(children []*View, decl, parent *TransitioningView, style Style, fromSide bool) []*TransitioningView {
	ordered := append([]*View(nil), children...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Frame, ordered[j].Frame
		switch style.Direction {
		case DirectionLeft:
			return a.X < b.X
		case DirectionRight:
			return a.X > b.X
		case DirectionUp:
			return a.Y > b.Y
		default:
			return a.Y < b.Y
		}
	})
	if !fromSide {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	step := style.Alpha.Delay()
	delay := decl.Config.delay
	out := make([]*TransitioningView, 0, len(ordered))
	for _, child := range ordered {
		cfg := NewViewConfig(decl.Config.duration, delay, decl.Config.HideSubviews, nil)
		delay += step
		out = append(out, &TransitioningView{
			View:          child,
			Style:         style,
			Priority:      decl.Priority,
			Config:        cfg,
			extractedFrom: parent,
			expanded:      true,
		})
	}
	return out
}

// splitChildren partitions children around the split's center view. Children
// level with the center along the axis belong to neither half and are
// dropped.
func splitChildren(children []*View, decl *TransitioningView, fromSide bool) []*TransitioningView {
	s := decl.Style
	center := s.Center
	if center == nil {
		return []*TransitioningView{decl}
	}
	centerPos := center.Frame.Origin()
	if center.Superview != nil && center.Superview != decl.View {
		centerPos = center.OriginIn(decl.View)
	}
	coord := func(p Point) float64 {
		if s.Axis == AxisHorizontal {
			return p.X
		}
		return p.Y
	}

	var before, after []*View
	keptCenter := false
	for _, c := range children {
		if c == center {
			keptCenter = true
			continue
		}
		switch pos := coord(c.Frame.Origin()); {
		case pos < coord(centerPos):
			before = append(before, c)
		case pos > coord(centerPos):
			after = append(after, c)
		}
	}

	backward, forward := DirectionUp, DirectionDown
	if s.Axis == AxisHorizontal {
		backward, forward = DirectionLeft, DirectionRight
	}
	out := extractChildren(before, decl, decl, PageOut(backward, s.Alpha), fromSide)
	out = append(out, extractChildren(after, decl, decl, PageOut(forward, s.Alpha), fromSide)...)
	if keptCenter && s.KeepCenter {
		out = append(out, &TransitioningView{
			View:          center,
			Style:         Fade(),
			Priority:      decl.Priority,
			Config:        decl.Config,
			extractedFrom: decl,
			expanded:      true,
		})
	}
	return out
}
