package handoff

import (
	"image"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandFill      CommandType = iota // solid axis-aligned quad
	CommandTriangles                    // filled or stroked vector geometry
	CommandImage                        // DrawImage of an ebiten image
	CommandText                         // text/v2 string
	CommandMasked                       // offscreen group composited through a mask
)

func (t CommandType) String() string {
	switch t {
	case CommandFill:
		return "fill"
	case CommandTriangles:
		return "triangles"
	case CommandImage:
		return "image"
	case CommandText:
		return "text"
	default:
		return "masked"
	}
}

// RenderCommand is a single draw instruction emitted while traversing a view
// tree. Coordinates are local to the source view; Transform maps them to the
// destination image. Triangle vertices are already in destination space.
type RenderCommand struct {
	Type      CommandType
	View      *View
	Transform Affine
	Rect      Rect
	// Color carries the effective opacity in its alpha.
	Color Color
	Alpha float64

	// Image commands. Source is the sub-rectangle of Image to draw.
	Image  *ebiten.Image
	Source image.Rectangle

	// Triangle commands.
	Vertices []ebiten.Vertex
	Indices  []uint16
	Filled   bool
	EvenOdd  bool

	// Text commands. Origin is the anchor of the first line in local
	// coordinates.
	Text        string
	Face        text.Face
	Align       TextAlign
	Origin      Point
	LineSpacing float64

	// Masked commands.
	Group []RenderCommand
	Mask  []RenderCommand
}

// Renderer turns view trees into render commands and draws them. The zero
// value is ready to use.
type Renderer struct {
	commands []RenderCommand
	pool     renderTexturePool
	faces    map[font.Face]*text.GoXFace
	white    *ebiten.Image
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

var defaultRenderer Renderer

// Draw renders the tree rooted at root into dst with a shared renderer.
func Draw(dst *ebiten.Image, root *View) {
	defaultRenderer.Draw(dst, root)
}

// Draw renders the tree rooted at root into dst. The root's frame origin is
// its position in dst.
func (r *Renderer) Draw(dst *ebiten.Image, root *View) {
	cmds := r.Build(root)
	r.submit(dst, cmds, image.Point{})
}

// Build traverses the tree rooted at root into a command list in drawing
// order. The returned slice is reused by the next call.
func (r *Renderer) Build(root *View) []RenderCommand {
	r.commands = r.commands[:0]
	if root == nil || root.IsDisposed() {
		return r.commands
	}
	r.commands = r.appendView(r.commands, root, localTransform(root), 1)
	return r.commands
}

// --- Traversal ---

// appendView emits v and its subtree. world maps v's bounds space to the
// destination; alpha is the inherited opacity.
func (r *Renderer) appendView(out []RenderCommand, v *View, world Affine, alpha float64) []RenderCommand {
	if v.Hidden || v.Layer.Hidden {
		return out
	}
	alpha *= v.Alpha * v.Layer.Opacity
	if alpha <= 0 {
		return out
	}
	if v.mask == nil && !v.ClipsToBounds {
		return r.appendViewContent(out, v, world, alpha)
	}

	cmds := r.appendViewContent(nil, v, world, 1)
	bounds := v.Bounds()
	if v.ClipsToBounds {
		clip := r.appendShape(nil, v, roundedRectPath(bounds, v.Layer.CornerRadius, v.Layer.MaskedCorners), world, ColorWhite, nil, false)
		cmds = []RenderCommand{{Type: CommandMasked, View: v, Transform: world, Rect: bounds, Alpha: 1, Group: cmds, Mask: clip}}
	}
	if m := v.mask; m != nil {
		mask := r.appendView(nil, m, localTransform(m).Concat(world), 1)
		cmds = []RenderCommand{{Type: CommandMasked, View: v, Transform: world, Rect: bounds, Alpha: 1, Group: cmds, Mask: mask}}
	}
	cmds[0].Alpha = alpha
	return append(out, cmds[0])
}

// appendViewContent emits the layer of v, its class payload and then its
// sublayers in order.
func (r *Renderer) appendViewContent(out []RenderCommand, v *View, world Affine, alpha float64) []RenderCommand {
	bounds := v.Bounds()
	l := v.Layer
	out = r.appendShadow(out, v, l, bounds, world, alpha)

	fill := v.BackgroundColor
	if fill.IsClear() {
		fill = l.BackgroundColor
	}
	out = r.appendBackground(out, v, l, bounds, fill, world, alpha)
	if l.Contents != nil {
		out = appendImage(out, v, l.Contents, unitSub(l.Contents, l.ContentsRect), gravityRect(l.Contents, bounds, l.ContentsGravity), world, alpha)
	}
	out = r.appendLayerKind(out, v, l, bounds, world, alpha)
	out = r.appendPayload(out, v, bounds, world, alpha)

	for _, sub := range l.sublayers {
		if owner := sub.owner; owner != nil {
			if owner.Superview != v {
				continue
			}
			out = r.appendView(out, owner, localTransform(owner).Concat(world), alpha)
			continue
		}
		out = r.appendLayer(out, sub, TranslateAffine(sub.Frame.X, sub.Frame.Y).Concat(world), alpha)
	}

	out = r.appendBorder(out, v, l, bounds, world, alpha)
	return out
}

// appendLayer emits a bare layer and its sublayers.
func (r *Renderer) appendLayer(out []RenderCommand, l *Layer, world Affine, alpha float64) []RenderCommand {
	if l.Hidden {
		return out
	}
	alpha *= l.Opacity
	if alpha <= 0 {
		return out
	}
	bounds := Rect{0, 0, l.Frame.Width, l.Frame.Height}
	out = r.appendShadow(out, nil, l, bounds, world, alpha)
	out = r.appendBackground(out, nil, l, bounds, l.BackgroundColor, world, alpha)
	if l.Contents != nil {
		out = appendImage(out, nil, l.Contents, unitSub(l.Contents, l.ContentsRect), gravityRect(l.Contents, bounds, l.ContentsGravity), world, alpha)
	}
	out = r.appendLayerKind(out, nil, l, bounds, world, alpha)
	for _, sub := range l.sublayers {
		out = r.appendLayer(out, sub, TranslateAffine(sub.Frame.X, sub.Frame.Y).Concat(world), alpha)
	}
	return r.appendBorder(out, nil, l, bounds, world, alpha)
}

func (r *Renderer) appendBackground(out []RenderCommand, v *View, l *Layer, bounds Rect, c Color, world Affine, alpha float64) []RenderCommand {
	if c.IsClear() {
		return out
	}
	if l.CornerRadius > 0 {
		return r.appendShape(out, v, roundedRectPath(bounds, l.CornerRadius, l.MaskedCorners), world, c.WithAlpha(alpha), nil, false)
	}
	return append(out, RenderCommand{Type: CommandFill, View: v, Transform: world, Rect: bounds, Color: c.WithAlpha(alpha), Alpha: alpha})
}

func (r *Renderer) appendBorder(out []RenderCommand, v *View, l *Layer, bounds Rect, world Affine, alpha float64) []RenderCommand {
	if l.BorderWidth <= 0 || l.BorderColor.IsClear() {
		return out
	}
	// The border is drawn inside the bounds.
	half := l.BorderWidth / 2
	inset := Rect{bounds.X + half, bounds.Y + half, bounds.Width - l.BorderWidth, bounds.Height - l.BorderWidth}
	path := roundedRectPath(inset, math.Max(0, l.CornerRadius-half), l.MaskedCorners)
	stroke := &vector.StrokeOptions{Width: float32(l.BorderWidth), LineJoin: vector.LineJoinMiter, MiterLimit: 10}
	return r.appendShape(out, v, path, world, l.BorderColor.WithAlpha(alpha), stroke, false)
}

// appendShadow emits the shadow silhouette. Blur is approximated by
// growing the silhouette by half the shadow radius.
func (r *Renderer) appendShadow(out []RenderCommand, v *View, l *Layer, bounds Rect, world Affine, alpha float64) []RenderCommand {
	s := l.Shadow
	if s.Opacity <= 0 || s.Color.IsClear() {
		return out
	}
	path := s.Path
	if path == nil {
		g := s.Radius / 2
		path = roundedRectPath(Rect{bounds.X - g, bounds.Y - g, bounds.Width + 2*g, bounds.Height + 2*g}, l.CornerRadius+g, l.MaskedCorners)
	}
	m := TranslateAffine(s.Offset.X, s.Offset.Y).Concat(world)
	return r.appendShape(out, v, path, m, s.Color.WithAlpha(s.Opacity*alpha), nil, false)
}

// appendLayerKind emits the gradient or shape payload of l.
func (r *Renderer) appendLayerKind(out []RenderCommand, v *View, l *Layer, bounds Rect, world Affine, alpha float64) []RenderCommand {
	switch {
	case l.Kind == LayerGradient && l.Gradient != nil && len(l.Gradient.Colors) > 0:
		return append(out, gradientQuad(v, l.Gradient, bounds, world, alpha))
	case l.Kind == LayerShape && l.Shape != nil && l.Shape.Path != nil:
		sh := l.Shape
		if !sh.FillColor.IsClear() {
			out = r.appendShape(out, v, sh.Path, world, sh.FillColor.WithAlpha(alpha), nil, sh.FillRule == FillRuleEvenOdd)
		}
		if sh.LineWidth > 0 && !sh.StrokeColor.IsClear() && sh.StrokeEnd > sh.StrokeStart {
			stroke := &vector.StrokeOptions{
				Width:      float32(sh.LineWidth),
				LineCap:    vectorCap(sh.LineCap),
				LineJoin:   vectorJoin(sh.LineJoin),
				MiterLimit: float32(sh.MiterLimit),
			}
			out = r.appendShape(out, v, sh.Path, world, sh.StrokeColor.WithAlpha(alpha), stroke, false)
		}
	}
	return out
}

// appendPayload emits the class-specific content of v.
func (r *Renderer) appendPayload(out []RenderCommand, v *View, bounds Rect, world Affine, alpha float64) []RenderCommand {
	switch {
	case v.Text != nil:
		return r.appendText(out, v, bounds, world, alpha)
	case v.Image != nil && v.Image.Image != nil:
		img := v.Image.Image
		return appendImage(out, v, img, img.Bounds(), contentModeRect(img, bounds, v.Image.Mode), world, alpha)
	case v.Button != nil:
		img := v.Button.BackgroundImages[v.Button.State]
		if img == nil {
			img = v.Button.BackgroundImages[ControlStateNormal]
		}
		if img != nil {
			return appendImage(out, v, img, img.Bounds(), bounds, world, alpha)
		}
	case v.Effect != nil:
		return append(out, RenderCommand{Type: CommandFill, View: v, Transform: world, Rect: bounds, Color: blurTint(v.Effect.Blur).WithAlpha(alpha), Alpha: alpha})
	case v.Activity != nil:
		a := v.Activity
		if !a.Animating && a.HidesWhenStopped {
			return out
		}
		d := math.Min(bounds.Width, bounds.Height) * 0.8
		ring := ellipsePath(Rect{(bounds.Width - d) / 2, (bounds.Height - d) / 2, d, d})
		stroke := &vector.StrokeOptions{Width: float32(math.Max(1, d/10))}
		return r.appendShape(out, v, ring, world, a.Color.WithAlpha(alpha), stroke, false)
	case v.Marker != nil:
		m := v.Marker
		d := math.Min(bounds.Width, bounds.Height)
		out = r.appendShape(out, v, ellipsePath(Rect{(bounds.Width - d) / 2, (bounds.Height - d) / 2, d, d}), world, m.MarkerTint.WithAlpha(alpha), nil, false)
		img := m.GlyphImage
		if m.Selected && m.SelectedGlyphImage != nil {
			img = m.SelectedGlyphImage
		}
		if img != nil {
			out = appendImage(out, v, img, img.Bounds(), contentModeRect(img, bounds, ContentModeCenter), world, alpha)
		}
	}
	return out
}

func (r *Renderer) appendText(out []RenderCommand, v *View, bounds Rect, world Affine, alpha float64) []RenderCommand {
	tc := v.Text
	if tc.Text == "" || tc.Font == nil || tc.Color.IsClear() {
		return out
	}
	face := r.face(tc.Font)
	m := face.Metrics()
	lineSpacing := m.HAscent + m.HDescent + m.HLineGap
	str := tc.Text
	lines := strings.Split(str, "\n")
	if tc.NumberOfLines > 0 && len(lines) > tc.NumberOfLines {
		lines = lines[:tc.NumberOfLines]
		str = strings.Join(lines, "\n")
	}
	height := lineSpacing*float64(len(lines)-1) + m.HAscent + m.HDescent

	origin := Point{X: bounds.X, Y: bounds.Y + (bounds.Height-height)/2}
	switch tc.Alignment {
	case TextAlignCenter:
		origin.X += bounds.Width / 2
	case TextAlignRight:
		origin.X += bounds.Width
	}
	return append(out, RenderCommand{
		Type:        CommandText,
		View:        v,
		Transform:   world,
		Rect:        bounds,
		Color:       tc.Color.WithAlpha(alpha),
		Alpha:       alpha,
		Text:        str,
		Face:        face,
		Align:       tc.Alignment,
		Origin:      origin,
		LineSpacing: lineSpacing,
	})
}

func (r *Renderer) face(f font.Face) *text.GoXFace {
	if xf, ok := r.faces[f]; ok {
		return xf
	}
	if r.faces == nil {
		r.faces = make(map[font.Face]*text.GoXFace)
	}
	xf := text.NewGoXFace(f)
	r.faces[f] = xf
	return xf
}

// appendShape tessellates path into destination-space triangles.
func (r *Renderer) appendShape(out []RenderCommand, v *View, p *Path, world Affine, c Color, stroke *vector.StrokeOptions, evenOdd bool) []RenderCommand {
	if p == nil || len(p.Segments) == 0 || c.IsClear() {
		return out
	}
	var vp vector.Path
	pt := func(q Point) (float32, float32) {
		x, y := transformPoint(world, q.X, q.Y)
		return float32(x), float32(y)
	}
	for _, s := range p.Segments {
		switch s.Op {
		case PathMoveTo:
			x, y := pt(s.Points[0])
			vp.MoveTo(x, y)
		case PathLineTo:
			x, y := pt(s.Points[0])
			vp.LineTo(x, y)
		case PathQuadTo:
			cx, cy := pt(s.Points[0])
			x, y := pt(s.Points[1])
			vp.QuadTo(cx, cy, x, y)
		case PathCubicTo:
			c1x, c1y := pt(s.Points[0])
			c2x, c2y := pt(s.Points[1])
			x, y := pt(s.Points[2])
			vp.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case PathClose:
			vp.Close()
		}
	}

	var vs []ebiten.Vertex
	var is []uint16
	if stroke != nil {
		s := *stroke
		s.Width *= float32(affineScale(world))
		vs, is = vp.AppendVerticesAndIndicesForStroke(vs, is, &s)
	} else {
		vs, is = vp.AppendVerticesAndIndicesForFilling(vs, is)
	}
	if len(is) == 0 {
		return out
	}
	rgba := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(rgba.R) / 0xff
		vs[i].ColorG = float32(rgba.G) / 0xff
		vs[i].ColorB = float32(rgba.B) / 0xff
		vs[i].ColorA = float32(rgba.A) / 0xff
	}
	return append(out, RenderCommand{
		Type:      CommandTriangles,
		View:      v,
		Transform: world,
		Color:     c,
		Alpha:     c.A,
		Vertices:  vs,
		Indices:   is,
		Filled:    stroke == nil,
		EvenOdd:   evenOdd,
	})
}

func appendImage(out []RenderCommand, v *View, img *ebiten.Image, src image.Rectangle, dst Rect, world Affine, alpha float64) []RenderCommand {
	if src.Empty() || dst.Width <= 0 || dst.Height <= 0 {
		return out
	}
	return append(out, RenderCommand{
		Type:      CommandImage,
		View:      v,
		Transform: world,
		Rect:      dst,
		Color:     ColorWhite.WithAlpha(alpha),
		Alpha:     alpha,
		Image:     img,
		Source:    src,
	})
}

// gradientQuad builds a quad whose corner colors are sampled along the
// gradient axis. Stops between the corners are interpolated linearly.
func gradientQuad(v *View, g *Gradient, bounds Rect, world Affine, alpha float64) RenderCommand {
	corners := [4]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	axis := g.End.Sub(g.Start)
	lenSq := axis.X*axis.X + axis.Y*axis.Y
	vs := make([]ebiten.Vertex, 4)
	for i, u := range corners {
		t := 0.0
		if lenSq > 0 {
			d := u.Sub(g.Start)
			t = clamp01((d.X*axis.X + d.Y*axis.Y) / lenSq)
		}
		c := g.colorAt(t).WithAlpha(alpha).RGBA()
		x, y := transformPoint(world, bounds.X+u.X*bounds.Width, bounds.Y+u.Y*bounds.Height)
		vs[i] = ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: float32(c.R) / 0xff,
			ColorG: float32(c.G) / 0xff,
			ColorB: float32(c.B) / 0xff,
			ColorA: float32(c.A) / 0xff,
		}
	}
	return RenderCommand{
		Type:      CommandTriangles,
		View:      v,
		Transform: world,
		Rect:      bounds,
		Alpha:     alpha,
		Vertices:  vs,
		Indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
}

// colorAt samples the gradient at t in [0,1]. Missing locations are spread
// evenly.
func (g *Gradient) colorAt(t float64) Color {
	n := len(g.Colors)
	if n == 1 {
		return g.Colors[0]
	}
	loc := func(i int) float64 {
		if len(g.Locations) == n {
			return g.Locations[i]
		}
		return float64(i) / float64(n-1)
	}
	if t <= loc(0) {
		return g.Colors[0]
	}
	for i := 1; i < n; i++ {
		if t <= loc(i) {
			span := loc(i) - loc(i-1)
			if span <= 0 {
				return g.Colors[i]
			}
			return lerpColor(g.Colors[i-1], g.Colors[i], (t-loc(i-1))/span)
		}
	}
	return g.Colors[n-1]
}

// --- Geometry helpers ---

// roundedRectPath returns the outline of r with the given corners rounded.
func roundedRectPath(r Rect, radius float64, corners Corner) *Path {
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	if radius <= 0 {
		return RectPath(r)
	}
	rad := func(c Corner) float64 {
		if corners&c != 0 {
			return radius
		}
		return 0
	}
	// Control point distance for a quarter circle.
	const k = 0.5522847498
	tl, tr, br, bl := rad(CornerTopLeft), rad(CornerTopRight), rad(CornerBottomRight), rad(CornerBottomLeft)
	p := &Path{}
	p.MoveTo(r.X+tl, r.Y)
	p.LineTo(r.MaxX()-tr, r.Y)
	if tr > 0 {
		p.CubicTo(r.MaxX()-tr+tr*k, r.Y, r.MaxX(), r.Y+tr-tr*k, r.MaxX(), r.Y+tr)
	}
	p.LineTo(r.MaxX(), r.MaxY()-br)
	if br > 0 {
		p.CubicTo(r.MaxX(), r.MaxY()-br+br*k, r.MaxX()-br+br*k, r.MaxY(), r.MaxX()-br, r.MaxY())
	}
	p.LineTo(r.X+bl, r.MaxY())
	if bl > 0 {
		p.CubicTo(r.X+bl-bl*k, r.MaxY(), r.X, r.MaxY()-bl+bl*k, r.X, r.MaxY()-bl)
	}
	p.LineTo(r.X, r.Y+tl)
	if tl > 0 {
		p.CubicTo(r.X, r.Y+tl-tl*k, r.X+tl-tl*k, r.Y, r.X+tl, r.Y)
	}
	return p.Close()
}

// ellipsePath returns the ellipse inscribed in r.
func ellipsePath(r Rect) *Path {
	return roundedRectPath(r, math.Min(r.Width, r.Height)/2, CornerAll)
}

// affineScale returns the mean scale factor of m.
func affineScale(m Affine) float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return (sx + sy) / 2
}

// unitSub returns the pixel rectangle of img selected by a unit-space rect.
func unitSub(img *ebiten.Image, u Rect) image.Rectangle {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	return image.Rect(
		b.Min.X+int(math.Round(u.X*w)), b.Min.Y+int(math.Round(u.Y*h)),
		b.Min.X+int(math.Round(u.MaxX()*w)), b.Min.Y+int(math.Round(u.MaxY()*h)),
	)
}

// fitRect places a content of size c inside bounds.
func fitRect(c Size, bounds Rect, mode ContentMode) Rect {
	if c.Width <= 0 || c.Height <= 0 {
		return bounds
	}
	var scale float64
	switch mode {
	case ContentModeScaleAspectFit:
		scale = math.Min(bounds.Width/c.Width, bounds.Height/c.Height)
	case ContentModeScaleAspectFill:
		scale = math.Max(bounds.Width/c.Width, bounds.Height/c.Height)
	case ContentModeCenter:
		scale = 1
	default:
		return bounds
	}
	w, h := c.Width*scale, c.Height*scale
	return Rect{bounds.X + (bounds.Width-w)/2, bounds.Y + (bounds.Height-h)/2, w, h}
}

func imageSize(img *ebiten.Image) Size {
	b := img.Bounds()
	return Size{float64(b.Dx()), float64(b.Dy())}
}

func contentModeRect(img *ebiten.Image, bounds Rect, mode ContentMode) Rect {
	return fitRect(imageSize(img), bounds, mode)
}

func gravityRect(img *ebiten.Image, bounds Rect, g ContentsGravity) Rect {
	switch g {
	case GravityResizeAspect:
		return fitRect(imageSize(img), bounds, ContentModeScaleAspectFit)
	case GravityResizeAspectFill:
		return fitRect(imageSize(img), bounds, ContentModeScaleAspectFill)
	case GravityCenter:
		return fitRect(imageSize(img), bounds, ContentModeCenter)
	default:
		return bounds
	}
}

func blurTint(b BlurStyle) Color {
	switch b {
	case BlurStyleLight:
		return Color{1, 1, 1, 0.75}
	case BlurStyleDark:
		return Color{0.1, 0.1, 0.1, 0.7}
	default:
		return Color{0.97, 0.97, 0.97, 0.6}
	}
}

func vectorCap(c LineCap) vector.LineCap {
	switch c {
	case LineCapRound:
		return vector.LineCapRound
	case LineCapSquare:
		return vector.LineCapSquare
	default:
		return vector.LineCapButt
	}
}

func vectorJoin(j LineJoin) vector.LineJoin {
	switch j {
	case LineJoinRound:
		return vector.LineJoinRound
	case LineJoinBevel:
		return vector.LineJoinBevel
	default:
		return vector.LineJoinMiter
	}
}

// --- Submission ---

// commandGeoM converts an affine matrix into an ebiten.GeoM.
func commandGeoM(m Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func (r *Renderer) whitePixel() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.RGBA())
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}

// submit draws cmds into dst, whose pixel (0,0) is the destination point
// origin.
func (r *Renderer) submit(dst *ebiten.Image, cmds []RenderCommand, origin image.Point) {
	ox, oy := float64(-origin.X), float64(-origin.Y)
	for i := range cmds {
		c := &cmds[i]
		switch c.Type {
		case CommandFill:
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(c.Rect.Width, c.Rect.Height)
			op.GeoM.Translate(c.Rect.X, c.Rect.Y)
			op.GeoM.Concat(commandGeoM(c.Transform))
			op.GeoM.Translate(ox, oy)
			op.ColorScale.ScaleWithColor(c.Color.RGBA())
			dst.DrawImage(r.whitePixel(), &op)

		case CommandTriangles:
			vs := c.Vertices
			if origin != (image.Point{}) {
				vs = make([]ebiten.Vertex, len(c.Vertices))
				copy(vs, c.Vertices)
				for j := range vs {
					vs[j].DstX += float32(ox)
					vs[j].DstY += float32(oy)
				}
			}
			var op ebiten.DrawTrianglesOptions
			op.AntiAlias = true
			if c.Filled {
				op.FillRule = ebiten.FillRuleNonZero
				if c.EvenOdd {
					op.FillRule = ebiten.FillRuleEvenOdd
				}
			}
			dst.DrawTriangles(vs, c.Indices, r.whitePixel(), &op)

		case CommandImage:
			src := c.Image.SubImage(c.Source).(*ebiten.Image)
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(c.Rect.Width/float64(c.Source.Dx()), c.Rect.Height/float64(c.Source.Dy()))
			op.GeoM.Translate(c.Rect.X, c.Rect.Y)
			op.GeoM.Concat(commandGeoM(c.Transform))
			op.GeoM.Translate(ox, oy)
			op.ColorScale.ScaleAlpha(float32(c.Alpha))
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(src, &op)

		case CommandText:
			op := &text.DrawOptions{}
			op.GeoM.Translate(c.Origin.X, c.Origin.Y)
			op.GeoM.Concat(commandGeoM(c.Transform))
			op.GeoM.Translate(ox, oy)
			op.ColorScale.ScaleWithColor(c.Color.RGBA())
			op.LineSpacing = c.LineSpacing
			switch c.Align {
			case TextAlignCenter:
				op.PrimaryAlign = text.AlignCenter
			case TextAlignRight:
				op.PrimaryAlign = text.AlignEnd
			}
			text.Draw(dst, c.Text, c.Face, op)

		case CommandMasked:
			r.submitMasked(dst, c, origin)
		}
	}
}

// submitMasked renders the group and its mask offscreen, keeps the group
// where the mask has alpha and draws the result into dst.
func (r *Renderer) submitMasked(dst *ebiten.Image, c *RenderCommand, origin image.Point) {
	area := dst.Bounds().Sub(dst.Bounds().Min).Add(origin)
	b := commandBounds(c.Group).Intersect(area)
	if b.Empty() {
		return
	}
	group := r.pool.Acquire(b.Dx(), b.Dy())
	r.submit(group, c.Group, b.Min)

	mask := r.pool.Acquire(b.Dx(), b.Dy())
	r.submit(mask, c.Mask, b.Min)
	var mop ebiten.DrawImageOptions
	mop.Blend = BlendMask.EbitenBlend()
	group.DrawImage(mask, &mop)
	r.pool.Release(mask)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(b.Min.X-origin.X), float64(b.Min.Y-origin.Y))
	op.ColorScale.ScaleAlpha(float32(c.Alpha))
	dst.DrawImage(group, &op)
	r.pool.Release(group)
}
