package handoff

// SetMask sets the view whose alpha channel decides which parts of v are
// drawn. A mask lives outside the view tree: it is detached from any
// superview and its frame is relative to v's bounds. Disposed views ignore
// the call.
func (v *View) SetMask(maskView *View) {
	if v.disposed {
		return
	}
	if maskView != nil {
		maskView.RemoveFromSuperview()
	}
	v.mask = maskView
}

// ClearMask detaches the mask from v and returns it, or nil if v had none.
func (v *View) ClearMask() *View {
	m := v.mask
	v.mask = nil
	return m
}

// Mask returns the current mask view, or nil if no mask is set.
func (v *View) Mask() *View {
	return v.mask
}

// placeMaskAt moves v's mask so that it covers a rect at origin in the space
// v's frame is expressed in, sized size. Snapshots are direct children of the
// transition container, so that space is the container's.
func (v *View) placeMaskAt(origin Point, size Size) {
	if v.mask == nil {
		return
	}
	v.mask.SetFrame(RectOf(origin.Sub(v.Frame.Origin()), size))
}
