package handoff

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// Class tags identify the runtime kind of a View. Snapshot recipes are looked
// up by class, so hosts may introduce their own tags and register recipes for
// them.
const (
	ClassView              = "View"
	ClassLabel             = "Label"
	ClassTextField         = "TextField"
	ClassButton            = "Button"
	ClassImageView         = "ImageView"
	ClassScrollView        = "ScrollView"
	ClassCollectionView    = "CollectionView"
	ClassActivityIndicator = "ActivityIndicator"
	ClassVisualEffectView  = "VisualEffectView"
	ClassMarkerAnnotation  = "MarkerAnnotationView"
	ClassScrollIndicator   = "_ScrollIndicator"

	// Snapshot-only classes.
	ClassSnapshot    = "Snapshot"
	ClassLayerHost   = "LayerHost"
	ClassPlaceholder = "Placeholder"
)

// ContentMode controls how an image is fitted into its view.
type ContentMode uint8

const (
	ContentModeScaleToFill ContentMode = iota
	ContentModeScaleAspectFit
	ContentModeScaleAspectFill
	ContentModeCenter
)

// LineBreakMode controls label truncation.
type LineBreakMode uint8

const (
	LineBreakByTruncatingTail LineBreakMode = iota
	LineBreakByWordWrapping
	LineBreakByClipping
)

// ControlState indexes per-state button resources.
type ControlState uint8

const (
	ControlStateNormal ControlState = iota
	ControlStateHighlighted
	ControlStateSelected
	numControlStates
)

// TextContent is the payload of labels and text fields.
type TextContent struct {
	Text                      string
	Font                      font.Face
	Color                     Color
	NumberOfLines             int
	Alignment                 TextAlign
	AdjustsFontSizeToFitWidth bool
	LineBreak                 LineBreakMode
}

// ImageContent is the payload of image views.
type ImageContent struct {
	Image *ebiten.Image
	Mode  ContentMode
}

// ButtonContent is the payload of buttons.
type ButtonContent struct {
	BackgroundImages [numControlStates]*ebiten.Image
	State            ControlState
}

// InsetAdjustment mirrors the scroll view content-inset adjustment behaviour.
type InsetAdjustment uint8

const (
	InsetAdjustmentAutomatic InsetAdjustment = iota
	InsetAdjustmentNever
)

// ScrollContent is the payload of scroll and collection views. The scroll
// offset itself is View.ContentOffset.
type ScrollContent struct {
	ContentSize              Size
	ContentInset             Insets
	SafeAreaInset            Insets
	InsetAdjustment          InsetAdjustment
	ShowsVerticalIndicator   bool
	ShowsHorizontalIndicator bool
}

// AdjustedContentInset returns the inset actually applied to the content.
func (s *ScrollContent) AdjustedContentInset() Insets {
	if s.InsetAdjustment == InsetAdjustmentNever {
		return s.ContentInset
	}
	return Insets{
		Top:    s.ContentInset.Top + s.SafeAreaInset.Top,
		Left:   s.ContentInset.Left + s.SafeAreaInset.Left,
		Bottom: s.ContentInset.Bottom + s.SafeAreaInset.Bottom,
		Right:  s.ContentInset.Right + s.SafeAreaInset.Right,
	}
}

// ActivityStyle selects the activity indicator appearance.
type ActivityStyle uint8

const (
	ActivityStyleMedium ActivityStyle = iota
	ActivityStyleLarge
)

// ActivityContent is the payload of activity indicators.
type ActivityContent struct {
	Style            ActivityStyle
	Color            Color
	HidesWhenStopped bool
	Animating        bool
}

// BlurStyle selects a visual effect blur.
type BlurStyle uint8

const (
	BlurStyleRegular BlurStyle = iota
	BlurStyleLight
	BlurStyleDark
)

// EffectContent is the payload of visual effect views.
type EffectContent struct {
	Blur     BlurStyle
	Vibrancy bool
}

// Visibility is a tri-state used by marker annotation titles.
type Visibility uint8

const (
	VisibilityAdaptive Visibility = iota
	VisibilityVisible
	VisibilityHidden
)

// MarkerContent is the payload of map marker annotation views.
type MarkerContent struct {
	TitleVisibility    Visibility
	SubtitleVisibility Visibility
	MarkerTint         Color
	GlyphTint          Color
	GlyphText          string
	GlyphImage         *ebiten.Image
	SelectedGlyphImage *ebiten.Image
	Image              *ebiten.Image
	AnimatesWhenAdded  bool
	CenterOffset       Point
	CalloutOffset      Point
	Enabled            bool
	Highlighted        bool
	Selected           bool
	CanShowCallout     bool
	Draggable          bool
	CollisionMode      uint8

	// Accessory views are live bindings and are never snapshotted.
	LeftCalloutAccessory  *View
	RightCalloutAccessory *View
}

// sizingMode controls how a view re-lays-out its children when its frame
// size changes. Only snapshot wrappers use it.
type sizingMode uint8

const (
	sizingNone   sizingMode = iota
	sizingFill              // single child always fills bounds
	sizingAspect            // hosted layer kept centered and uniformly scaled
)

// --- ID counter ---

// viewIDCounter is a plain counter; the view tree is single-threaded.
var viewIDCounter uint32

func nextViewID() uint32 {
	viewIDCounter++
	return viewIDCounter
}

// View is a node of the live view hierarchy and of snapshot trees. A single
// flat struct is used for every class; class-specific state lives in the
// optional payload pointers.
type View struct {
	// Identity
	ID    uint32
	Name  string
	Class string

	// Hierarchy
	Superview *View
	subviews  []*View

	// Geometry. Frame is in the superview's coordinate space; ContentOffset is
	// the bounds origin (scroll position).
	Frame         Rect
	ContentOffset Point
	Transform     Affine

	// Appearance
	Alpha               float64
	Hidden              bool
	TintColor           Color
	ClipsToBounds       bool
	BackgroundColor     Color
	AutoresizingMask    AutoresizingMask
	AutoresizesSubviews bool

	// Behaviour
	UserInteractionEnabled bool
	OnLayout               func(v *View)

	// Backing render layer. Never nil for views built with the constructors.
	Layer *Layer

	// Class payloads
	Text     *TextContent
	Image    *ImageContent
	Button   *ButtonContent
	Scroll   *ScrollContent
	Activity *ActivityContent
	Effect   *EffectContent
	Marker   *MarkerContent

	// Snapshot bookkeeping. SourceClass is the class of the live view a
	// snapshot node was copied from.
	SourceClass string
	path        []int
	sizing      sizingMode
	hostedSize  Size

	mask        *View
	needsLayout bool
	disposed    bool
}

// viewDefaults sets the common default field values shared by all constructors.
func viewDefaults(v *View) {
	v.ID = nextViewID()
	v.Alpha = 1
	v.Transform = IdentityAffine
	v.AutoresizesSubviews = true
	v.UserInteractionEnabled = true
	v.Layer = newLayer(LayerPlain)
	v.Layer.owner = v
}

// NewView creates a plain view with the given frame.
func NewView(name string, frame Rect) *View {
	v := &View{Name: name, Class: ClassView, Frame: frame}
	viewDefaults(v)
	v.Layer.Frame = frame
	return v
}

// NewViewOfClass creates a view tagged with an arbitrary class. Classes without
// a registered recipe are snapshotted as placeholders.
func NewViewOfClass(name, class string, frame Rect) *View {
	v := NewView(name, frame)
	v.Class = class
	return v
}

// NewLabel creates a text label.
func NewLabel(name string, frame Rect, text string, face font.Face) *View {
	v := NewView(name, frame)
	v.Class = ClassLabel
	v.Text = &TextContent{Text: text, Font: face, Color: ColorBlack, NumberOfLines: 1}
	return v
}

// NewTextField creates a single-line text field.
func NewTextField(name string, frame Rect, text string, face font.Face) *View {
	v := NewView(name, frame)
	v.Class = ClassTextField
	v.Text = &TextContent{Text: text, Font: face, Color: ColorBlack, NumberOfLines: 1}
	return v
}

// NewButton creates a button with an optional normal-state background image.
func NewButton(name string, frame Rect, background *ebiten.Image) *View {
	v := NewView(name, frame)
	v.Class = ClassButton
	v.Button = &ButtonContent{}
	v.Button.BackgroundImages[ControlStateNormal] = background
	return v
}

// NewImageView creates an image view.
func NewImageView(name string, frame Rect, img *ebiten.Image) *View {
	v := NewView(name, frame)
	v.Class = ClassImageView
	v.Image = &ImageContent{Image: img, Mode: ContentModeScaleAspectFit}
	return v
}

// NewScrollView creates a scroll view with the given content size.
func NewScrollView(name string, frame Rect, contentSize Size) *View {
	v := NewView(name, frame)
	v.Class = ClassScrollView
	v.ClipsToBounds = true
	v.Scroll = &ScrollContent{
		ContentSize:              contentSize,
		ShowsVerticalIndicator:   true,
		ShowsHorizontalIndicator: true,
	}
	return v
}

// NewCollectionView creates a cell collection; its cells are plain subviews.
func NewCollectionView(name string, frame Rect, contentSize Size) *View {
	v := NewScrollView(name, frame, contentSize)
	v.Class = ClassCollectionView
	return v
}

// NewActivityIndicator creates an activity indicator.
func NewActivityIndicator(name string, frame Rect, style ActivityStyle) *View {
	v := NewView(name, frame)
	v.Class = ClassActivityIndicator
	v.Activity = &ActivityContent{Style: style, Color: ColorBlack, HidesWhenStopped: true}
	return v
}

// NewVisualEffectView creates a blur/vibrancy container.
func NewVisualEffectView(name string, frame Rect, blur BlurStyle) *View {
	v := NewView(name, frame)
	v.Class = ClassVisualEffectView
	v.Effect = &EffectContent{Blur: blur}
	return v
}

// NewMarkerAnnotation creates a map marker annotation view.
func NewMarkerAnnotation(name string, frame Rect, tint Color) *View {
	v := NewView(name, frame)
	v.Class = ClassMarkerAnnotation
	v.Marker = &MarkerContent{MarkerTint: tint, GlyphTint: ColorWhite, Enabled: true}
	return v
}

// NewScrollIndicator creates the system-owned indicator subview of a scroll
// view. Indicators never take part in transitions.
func NewScrollIndicator(name string, frame Rect) *View {
	return NewViewOfClass(name, ClassScrollIndicator, frame)
}

// IsScrollIndicator reports whether v is a scroll indicator.
func (v *View) IsScrollIndicator() bool {
	return v.Class == ClassScrollIndicator
}

// IsScrollable reports whether v scrolls its content.
func (v *View) IsScrollable() bool {
	return v.Scroll != nil
}

// --- Tree manipulation ---

// AddSubview appends child to this view's subviews and its layer to this
// view's sublayers. If child already has a superview, it is removed first.
// Panics if child is nil or child is an ancestor of this view (cycle).
func (v *View) AddSubview(child *View) {
	v.InsertSubviewAt(child, -1)
}

// InsertSubviewAt inserts child at the given subview index; -1 appends.
// Same reparenting and cycle-check behavior as AddSubview.
func (v *View) InsertSubviewAt(child *View, index int) {
	if child == nil {
		panic("handoff: cannot add nil subview")
	}
	if globalDebug {
		debugCheckDisposed(v, "AddSubview (parent)")
		debugCheckDisposed(child, "AddSubview (child)")
	}
	if isAncestor(child, v) {
		panic("handoff: adding subview would create a cycle")
	}
	if child.Superview != nil {
		child.Superview.detach(child)
	}
	if index < 0 || index > len(v.subviews) {
		index = len(v.subviews)
	}

	// Keep the layer order consistent with the subview order: the child's
	// layer goes right before the layer of the subview it displaces.
	layerIndex := -1
	if index < len(v.subviews) {
		layerIndex = v.Layer.indexOf(v.subviews[index].Layer)
	}
	v.Layer.insertSublayer(child.Layer, layerIndex)

	child.Superview = v
	v.subviews = append(v.subviews, nil)
	copy(v.subviews[index+1:], v.subviews[index:])
	v.subviews[index] = child
	v.needsLayout = true
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddSublayer appends a bare render layer (one that backs no view).
func (v *View) AddSublayer(l *Layer) {
	if l == nil {
		panic("handoff: cannot add nil sublayer")
	}
	if l.owner != nil {
		panic("handoff: layer backs a view; add the view instead")
	}
	v.Layer.insertSublayer(l, -1)
}

// RemoveFromSuperview detaches this view from its superview.
// No-op if this view has no superview.
func (v *View) RemoveFromSuperview() {
	if v.Superview == nil {
		return
	}
	v.Superview.detach(v)
}

// detach removes child from v's subviews and its layer from v's sublayers.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (v *View) detach(child *View) {
	for i, c := range v.subviews {
		if c == child {
			copy(v.subviews[i:], v.subviews[i+1:])
			v.subviews[len(v.subviews)-1] = nil
			v.subviews = v.subviews[:len(v.subviews)-1]
			break
		}
	}
	v.Layer.removeSublayer(child.Layer)
	child.Superview = nil
	v.needsLayout = true
}

// Subviews returns the subview list. The returned slice MUST NOT be mutated by the caller.
func (v *View) Subviews() []*View {
	return v.subviews
}

// NumSubviews returns the number of subviews.
func (v *View) NumSubviews() int {
	return len(v.subviews)
}

// SubviewAt returns the subview at the given index.
func (v *View) SubviewAt(index int) *View {
	return v.subviews[index]
}

// Descendant follows a path of subview indices from v. It returns nil when the
// path leaves the tree.
func (v *View) Descendant(path ...int) *View {
	cur := v
	for _, i := range path {
		if i < 0 || i >= len(cur.subviews) {
			return nil
		}
		cur = cur.subviews[i]
	}
	return cur
}

// Path returns the child-position path of a snapshot node relative to the
// snapshot root. Live views return nil.
func (v *View) Path() []int {
	return v.path
}

// Content returns the copied tree inside a snapshot wrapper, or v itself for
// any other view.
func (v *View) Content() *View {
	if v.Class == ClassSnapshot && len(v.subviews) == 1 {
		return v.subviews[0]
	}
	return v
}

// IsSnapshot reports whether v is a snapshot wrapper.
func (v *View) IsSnapshot() bool {
	return v.Class == ClassSnapshot
}

// CornerRadius returns the backing layer's corner radius.
func (v *View) CornerRadius() float64 {
	return v.Layer.CornerRadius
}

// SetCornerRadius sets the corner radius. Snapshot wrappers forward it to
// their content so the visible clip follows the wrapper.
func (v *View) SetCornerRadius(r float64) {
	v.Layer.CornerRadius = r
	if v.sizing == sizingFill && len(v.subviews) == 1 {
		v.subviews[0].Layer.CornerRadius = r
	}
}

// --- Layout ---

// SetNeedsLayout marks the view for a layout pass.
func (v *View) SetNeedsLayout() {
	v.needsLayout = true
}

// LayoutIfNeeded runs pending layout passes for this view and its subtree.
func (v *View) LayoutIfNeeded() {
	if v.needsLayout {
		v.needsLayout = false
		v.layoutSubviews()
		if v.OnLayout != nil {
			v.OnLayout(v)
		}
	}
	for _, c := range v.subviews {
		c.LayoutIfNeeded()
	}
}

// --- Disposal ---

// Dispose removes this view from its superview, marks it as disposed,
// and recursively disposes all descendants.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	v.RemoveFromSuperview()
	v.dispose()
}

func (v *View) dispose() {
	v.disposed = true
	v.ID = 0
	for _, c := range v.subviews {
		c.Superview = nil
		c.dispose()
	}
	v.subviews = nil
	if v.Layer != nil {
		v.Layer.sublayers = nil
	}
	v.mask = nil
	v.OnLayout = nil
	v.Text = nil
	v.Image = nil
	v.Button = nil
	v.Scroll = nil
	v.Activity = nil
	v.Effect = nil
	v.Marker = nil
}

// IsDisposed returns true if this view has been disposed.
func (v *View) IsDisposed() bool {
	return v.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of view (or view itself).
func isAncestor(candidate, view *View) bool {
	for p := view; p != nil; p = p.Superview {
		if p == candidate {
			return true
		}
	}
	return false
}
