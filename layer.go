package handoff

import "github.com/hajimehoshi/ebiten/v2"

// LayerKind distinguishes render layer behaviour.
type LayerKind uint8

const (
	LayerPlain    LayerKind = iota // background, border, contents
	LayerGradient                  // linear gradient fill
	LayerShape                     // vector path fill and stroke
)

// ContentsGravity positions layer contents inside the layer bounds.
type ContentsGravity uint8

const (
	GravityResize ContentsGravity = iota
	GravityResizeAspect
	GravityResizeAspectFill
	GravityCenter
)

// Shadow describes a drop shadow. A nil Path means the layer outline is used.
type Shadow struct {
	Path    *Path
	Color   Color
	Offset  Point
	Radius  float64
	Opacity float64
}

// Gradient is the payload of gradient layers. Points are in unit space.
type Gradient struct {
	Start     Point
	End       Point
	Locations []float64
	Colors    []Color
}

// FillRule selects how path interiors are computed.
type FillRule uint8

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// LineCap and LineJoin mirror the usual stroke attributes.
type (
	LineCap  uint8
	LineJoin uint8
)

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// ShapeStyle is the payload of shape layers.
type ShapeStyle struct {
	Path        *Path
	FillColor   Color
	FillRule    FillRule
	StrokeColor Color
	LineWidth   float64
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64
	StrokeStart float64
	StrokeEnd   float64
}

// Layer is the render layer behind a view, or a bare layer added with
// View.AddSublayer. A view's layer lists the layers of its subviews
// interleaved with its bare sublayers, in drawing order.
type Layer struct {
	Kind LayerKind

	Frame     Rect
	Hidden    bool
	Opacity   float64
	ZPosition float64
	Anchor    Point

	BackgroundColor Color
	Opaque          bool
	BorderWidth     float64
	BorderColor     Color
	CornerRadius    float64
	MaskedCorners   Corner
	Shadow          Shadow

	Contents           *ebiten.Image
	ContentsRect       Rect
	ContentsCenter     Rect
	ContentsScale      float64
	ContentsGravity    ContentsGravity
	ShouldRasterize    bool
	RasterizationScale float64

	Gradient *Gradient
	Shape    *ShapeStyle

	sublayers []*Layer
	// owner is the view this layer backs, nil for bare layers.
	owner *View
}

func newLayer(kind LayerKind) *Layer {
	return &Layer{
		Kind:               kind,
		Opacity:            1,
		Anchor:             Point{0.5, 0.5},
		MaskedCorners:      CornerAll,
		ContentsRect:       Rect{0, 0, 1, 1},
		ContentsCenter:     Rect{0, 0, 1, 1},
		ContentsScale:      1,
		RasterizationScale: 1,
	}
}

// NewLayer creates a bare plain layer.
func NewLayer(frame Rect) *Layer {
	l := newLayer(LayerPlain)
	l.Frame = frame
	return l
}

// NewGradientLayer creates a bare gradient layer.
func NewGradientLayer(frame Rect, g Gradient) *Layer {
	l := newLayer(LayerGradient)
	l.Frame = frame
	l.Gradient = &g
	return l
}

// NewShapeLayer creates a bare shape layer.
func NewShapeLayer(frame Rect, s ShapeStyle) *Layer {
	l := newLayer(LayerShape)
	l.Frame = frame
	if s.StrokeEnd == 0 && s.StrokeStart == 0 {
		s.StrokeEnd = 1
	}
	if s.MiterLimit == 0 {
		s.MiterLimit = 10
	}
	l.Shape = &s
	return l
}

// Sublayers returns the sublayer list. The returned slice MUST NOT be mutated by the caller.
func (l *Layer) Sublayers() []*Layer {
	return l.sublayers
}

// Owner returns the view this layer backs, or nil for a bare layer.
func (l *Layer) Owner() *View {
	return l.owner
}

// AddSublayer appends a bare sublayer to a bare layer.
func (l *Layer) AddSublayer(sub *Layer) {
	l.insertSublayer(sub, -1)
}

func (l *Layer) insertSublayer(sub *Layer, index int) {
	if index < 0 || index > len(l.sublayers) {
		l.sublayers = append(l.sublayers, sub)
		return
	}
	l.sublayers = append(l.sublayers, nil)
	copy(l.sublayers[index+1:], l.sublayers[index:])
	l.sublayers[index] = sub
}

func (l *Layer) indexOf(sub *Layer) int {
	for i, s := range l.sublayers {
		if s == sub {
			return i
		}
	}
	return -1
}

func (l *Layer) removeSublayer(sub *Layer) {
	i := l.indexOf(sub)
	if i < 0 {
		return
	}
	copy(l.sublayers[i:], l.sublayers[i+1:])
	l.sublayers[len(l.sublayers)-1] = nil
	l.sublayers = l.sublayers[:len(l.sublayers)-1]
}

// PathOp is a vector path command.
type PathOp uint8

const (
	PathMoveTo PathOp = iota
	PathLineTo
	PathQuadTo
	PathCubicTo
	PathClose
)

// PathSegment is one command of a Path with its control and end points.
type PathSegment struct {
	Op     PathOp
	Points [3]Point
}

// Path is an immutable-after-build vector outline used by shape layers and
// shadow paths.
type Path struct {
	Segments []PathSegment
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	p.Segments = append(p.Segments, PathSegment{Op: PathMoveTo, Points: [3]Point{{x, y}}})
	return p
}

// LineTo adds a straight segment.
func (p *Path) LineTo(x, y float64) *Path {
	p.Segments = append(p.Segments, PathSegment{Op: PathLineTo, Points: [3]Point{{x, y}}})
	return p
}

// QuadTo adds a quadratic curve.
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.Segments = append(p.Segments, PathSegment{Op: PathQuadTo, Points: [3]Point{{cx, cy}, {x, y}}})
	return p
}

// CubicTo adds a cubic curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.Segments = append(p.Segments, PathSegment{Op: PathCubicTo, Points: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.Segments = append(p.Segments, PathSegment{Op: PathClose})
	return p
}

// RectPath returns a closed rectangular path.
func RectPath(r Rect) *Path {
	p := &Path{}
	return p.MoveTo(r.X, r.Y).LineTo(r.MaxX(), r.Y).LineTo(r.MaxX(), r.MaxY()).LineTo(r.X, r.MaxY()).Close()
}

// Clone returns a deep copy of the path. A nil path clones to nil.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	return &Path{Segments: append([]PathSegment(nil), p.Segments...)}
}
