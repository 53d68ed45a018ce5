package handoff

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine is the identity transform.
var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

// ScaleAffine returns a scaling transform.
func ScaleAffine(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// TranslateAffine returns a translation transform.
func TranslateAffine(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// RotateAffine returns a rotation by r radians.
func RotateAffine(r float64) Affine {
	sin, cos := math.Sincos(r)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity reports whether m is the identity transform.
func (m Affine) IsIdentity() bool {
	return m == IdentityAffine
}

// Concat returns m followed by n (n * m).
func (m Affine) Concat(n Affine) Affine {
	return multiplyAffine(n, m)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m Affine) Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Affine, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// localTransform maps v's bounds coordinates into its superview's bounds
// coordinates: content offset, then Transform about the frame center, then
// the frame origin.
func localTransform(v *View) Affine {
	m := TranslateAffine(-v.ContentOffset.X, -v.ContentOffset.Y)
	if !v.Transform.IsIdentity() {
		cx, cy := v.Frame.Width/2, v.Frame.Height/2
		m = m.Concat(TranslateAffine(-cx, -cy)).Concat(v.Transform).Concat(TranslateAffine(cx, cy))
	}
	return m.Concat(TranslateAffine(v.Frame.X, v.Frame.Y))
}

// --- Frame ---

// Bounds returns the view's bounds rectangle (content offset and frame size).
func (v *View) Bounds() Rect {
	return Rect{v.ContentOffset.X, v.ContentOffset.Y, v.Frame.Width, v.Frame.Height}
}

// Origin returns the frame origin.
func (v *View) Origin() Point {
	return v.Frame.Origin()
}

// SetOrigin moves the view without resizing it.
func (v *View) SetOrigin(p Point) {
	v.SetFrame(v.Frame.WithOrigin(p))
}

// SetFrame sets the frame. When the size changes, snapshot wrappers re-lay-out
// their content immediately and live views are marked for layout.
func (v *View) SetFrame(r Rect) {
	resized := r.Width != v.Frame.Width || r.Height != v.Frame.Height
	v.Frame = r
	v.Layer.Frame = r
	if resized {
		v.needsLayout = true
		if v.sizing != sizingNone {
			v.layoutSubviews()
			v.needsLayout = false
		}
	}
}

// layoutSubviews applies the view's sizing mode to its children.
func (v *View) layoutSubviews() {
	switch v.sizing {
	case sizingFill:
		for _, c := range v.subviews {
			if c.Class == ClassPlaceholder && isSystemOwned(c.SourceClass) {
				continue
			}
			c.SetFrame(Rect{0, 0, v.Frame.Width, v.Frame.Height})
		}
	case sizingAspect:
		if len(v.Layer.sublayers) == 0 || v.hostedSize.Width <= 0 || v.hostedSize.Height <= 0 {
			return
		}
		scale := math.Min(v.Frame.Width/v.hostedSize.Width, v.Frame.Height/v.hostedSize.Height)
		w, h := v.hostedSize.Width*scale, v.hostedSize.Height*scale
		hosted := v.Layer.sublayers[0]
		hosted.Frame = Rect{(v.Frame.Width - w) / 2, (v.Frame.Height - h) / 2, w, h}
	}
}

// --- Coordinate conversion ---

// toWindow returns the transform from v's bounds space to the root space of
// its tree.
func toWindow(v *View) Affine {
	m := IdentityAffine
	for cur := v; cur != nil; cur = cur.Superview {
		m = m.Concat(localTransform(cur))
	}
	return m
}

// ConvertPoint converts p from v's bounds space to to's bounds space. A nil
// view stands for the root space of the tree.
func (v *View) ConvertPoint(p Point, to *View) Point {
	m := IdentityAffine
	if v != nil {
		m = toWindow(v)
	}
	if to != nil {
		m = m.Concat(invertAffine(toWindow(to)))
	}
	x, y := transformPoint(m, p.X, p.Y)
	return Point{x, y}
}

// OriginIn returns the position of v's frame origin in container's space. A
// view without a superview reports its own frame origin.
func (v *View) OriginIn(container *View) Point {
	if v.Superview == nil {
		return v.Frame.Origin()
	}
	return v.Superview.ConvertPoint(v.Frame.Origin(), container)
}
