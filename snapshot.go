package handoff

import "log/slog"

// Cloner produces inert visual copies of live views. The zero value uses
// DefaultRecipes.
type Cloner struct {
	Recipes *RecipeRegistry
}

func (c *Cloner) registry() *RecipeRegistry {
	if c == nil || c.Recipes == nil {
		return DefaultRecipes
	}
	return c.Recipes
}

// Clone returns a snapshot of v: a wrapper view of class ClassSnapshot whose
// single child is the copied tree. The wrapper's frame equals v's frame, the
// content always fills the wrapper, and the wrapper's corner radius is
// forwarded to the content.
//
// With hideSubviews set only v's own appearance is copied. Otherwise every
// sublayer of v is copied in drawing order: layers backing subviews are
// cloned as views, bare layers are cloned and wrapped in LayerHost views that
// keep them centered and uniformly scaled when resized.
//
// Clone only reads v. Missing optional state copies as absent.
func (c *Cloner) Clone(v *View, hideSubviews bool) *View {
	content := c.cloneView(v, hideSubviews, nil)
	snap := newSnapshotWrapper(content)
	if globalDebug {
		Logger().Debug("snapshot cloned",
			slog.String("view", v.Name),
			slog.String("class", v.Class),
			slog.Int("nodes", countNodes(snap)))
	}
	return snap
}

// Clone clones v with the default registry.
func Clone(v *View, hideSubviews bool) *View {
	var c Cloner
	return c.Clone(v, hideSubviews)
}

func newSnapshotWrapper(content *View) *View {
	w := NewView(content.Name, content.Frame)
	w.Class = ClassSnapshot
	w.SourceClass = content.SourceClass
	w.UserInteractionEnabled = false
	w.Alpha = content.Alpha
	w.Hidden = content.Hidden
	w.sizing = sizingFill
	w.Layer.CornerRadius = content.Layer.CornerRadius
	content.Frame = content.Frame.WithOrigin(Point{})
	content.Layer.Frame = content.Frame
	content.Alpha = 1
	content.Hidden = false
	w.AddSubview(content)
	return w
}

// cloneView copies src and, unless hide is set, its sublayer tree. Children
// are built before they are attached; path records each node's position
// under the snapshot root.
func (c *Cloner) cloneView(src *View, hide bool, path []int) *View {
	reg := c.registry()
	dst := reg.recipeFor(src.Class)(src)
	copyViewBase(src, dst)
	dst.SourceClass = src.Class
	dst.path = path
	if src.mask != nil {
		dst.mask = c.cloneView(src.mask, false, nil)
	}
	if hide {
		return dst
	}

	children := make([]*View, 0, len(src.Layer.sublayers))
	for _, sub := range src.Layer.sublayers {
		childPath := appendPath(path, len(children))
		if owner := sub.owner; owner != nil && owner.Superview == src {
			children = append(children, c.cloneView(owner, false, childPath))
			continue
		}
		children = append(children, newLayerHost(c.cloneLayer(sub, false), childPath))
	}
	for _, child := range children {
		dst.AddSubview(child)
	}
	return dst
}

// cloneLayer copies a bare layer and, unless hide is set, its sublayers.
func (c *Cloner) cloneLayer(src *Layer, hide bool) *Layer {
	dst := c.registry().layerRecipeFor(src.Kind)(src)
	copyLayerBase(src, dst)
	dst.Frame = src.Frame
	dst.Hidden = src.Hidden
	dst.Opacity = src.Opacity
	dst.ZPosition = src.ZPosition
	dst.Anchor = src.Anchor
	if hide {
		return dst
	}
	for _, sub := range src.sublayers {
		dst.sublayers = append(dst.sublayers, c.cloneLayer(sub, false))
	}
	return dst
}

// newLayerHost wraps a bare layer in a view sized to the layer. The layer is
// re-centered and uniformly rescaled whenever the host is resized.
func newLayerHost(l *Layer, path []int) *View {
	host := NewView("layer", l.Frame)
	host.Class = ClassLayerHost
	host.SourceClass = ClassLayerHost
	host.UserInteractionEnabled = false
	host.Hidden = l.Hidden
	host.sizing = sizingAspect
	host.hostedSize = l.Frame.Size()
	host.path = path
	l.Frame = l.Frame.WithOrigin(Point{})
	host.Layer.insertSublayer(l, -1)
	return host
}

// copyViewBase copies the generic view and layer state from src to dst.
func copyViewBase(src, dst *View) {
	dst.Alpha = src.Alpha
	dst.Hidden = src.Hidden
	dst.TintColor = src.TintColor
	dst.ClipsToBounds = src.ClipsToBounds
	dst.BackgroundColor = src.BackgroundColor
	dst.Transform = src.Transform
	dst.AutoresizingMask = src.AutoresizingMask
	dst.AutoresizesSubviews = src.AutoresizesSubviews
	dst.UserInteractionEnabled = false
	dst.OnLayout = nil
	copyLayerBase(src.Layer, dst.Layer)
	dst.Layer.Frame = dst.Frame
}

// copyLayerBase copies the appearance state shared by every layer kind.
func copyLayerBase(src, dst *Layer) {
	dst.BackgroundColor = src.BackgroundColor
	dst.Opaque = src.Opaque
	dst.BorderWidth = src.BorderWidth
	dst.BorderColor = src.BorderColor
	dst.CornerRadius = src.CornerRadius
	dst.MaskedCorners = src.MaskedCorners
	dst.Shadow = Shadow{
		Path:    src.Shadow.Path.Clone(),
		Color:   src.Shadow.Color,
		Offset:  src.Shadow.Offset,
		Radius:  src.Shadow.Radius,
		Opacity: src.Shadow.Opacity,
	}
	dst.Contents = src.Contents
	dst.ContentsRect = src.ContentsRect
	dst.ContentsCenter = src.ContentsCenter
	dst.ContentsScale = src.ContentsScale
	dst.ContentsGravity = src.ContentsGravity
	dst.ShouldRasterize = src.ShouldRasterize
	dst.RasterizationScale = src.RasterizationScale
}

func appendPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}
