package handoff

import "testing"

func TestCloneWrapsContent(t *testing.T) {
	src := NewView("card", Rect{10, 20, 100, 50})
	src.Alpha = 0.5
	src.BackgroundColor = ColorBlack
	src.SetCornerRadius(6)

	snap := Clone(src, false)
	if !snap.IsSnapshot() || snap.NumSubviews() != 1 {
		t.Fatalf("expected wrapper with one child, got class=%s children=%d", snap.Class, snap.NumSubviews())
	}
	if snap.Frame != src.Frame {
		t.Errorf("wrapper frame = %v, want %v", snap.Frame, src.Frame)
	}
	if snap.Alpha != 0.5 || snap.CornerRadius() != 6 {
		t.Errorf("wrapper alpha=%v radius=%v", snap.Alpha, snap.CornerRadius())
	}
	content := snap.Content()
	if content.Frame != (Rect{0, 0, 100, 50}) || content.Alpha != 1 {
		t.Errorf("content frame=%v alpha=%v", content.Frame, content.Alpha)
	}
	if content.BackgroundColor != ColorBlack || content.SourceClass != ClassView {
		t.Error("appearance not copied")
	}
	if snap.UserInteractionEnabled || content.UserInteractionEnabled {
		t.Error("snapshots are inert")
	}
}

func TestCloneLeavesSourceUntouched(t *testing.T) {
	parent := NewView("parent", Rect{})
	src := NewView("src", Rect{1, 2, 3, 4})
	child := NewView("child", Rect{})
	parent.AddSubview(src)
	src.AddSubview(child)

	Clone(src, false)
	if src.Superview != parent || src.NumSubviews() != 1 || child.Superview != src {
		t.Error("clone must not modify the source tree")
	}
	if src.Frame != (Rect{1, 2, 3, 4}) || !src.UserInteractionEnabled {
		t.Error("clone must not modify the source view")
	}
}

func TestCloneHideSubviews(t *testing.T) {
	src := NewView("src", Rect{0, 0, 10, 10})
	src.AddSubview(NewView("child", Rect{}))
	src.AddSublayer(NewLayer(Rect{}))

	snap := Clone(src, true)
	if snap.Content().NumSubviews() != 0 || len(snap.Content().Layer.Sublayers()) != 0 {
		t.Error("hideSubviews should copy only the view itself")
	}
}

func TestCloneKeepsDrawingOrder(t *testing.T) {
	src := NewView("src", Rect{0, 0, 100, 100})
	a := NewView("a", Rect{0, 0, 10, 10})
	b := NewLabel("b", Rect{0, 10, 10, 10}, "b", nil)
	src.AddSubview(a)
	src.AddSublayer(NewGradientLayer(Rect{0, 0, 100, 50}, Gradient{Colors: []Color{ColorBlack, ColorWhite}}))
	src.AddSubview(b)

	content := Clone(src, false).Content()
	if content.NumSubviews() != 3 {
		t.Fatalf("children = %d, want 3", content.NumSubviews())
	}
	want := []string{ClassView, ClassLayerHost, ClassLabel}
	for i, class := range want {
		c := content.SubviewAt(i)
		if c.Class != class {
			t.Errorf("child %d class = %s, want %s", i, c.Class, class)
		}
		if p := c.Path(); len(p) != 1 || p[0] != i {
			t.Errorf("child %d path = %v", i, p)
		}
	}
	if g := content.SubviewAt(1).Layer.Sublayers()[0]; g.Kind != LayerGradient || len(g.Gradient.Colors) != 2 {
		t.Error("gradient layer not copied")
	}
}

func TestClonePlainViewKeepsClass(t *testing.T) {
	src := NewView("card", Rect{0, 0, 10, 10})
	src.AddSubview(NewView("child", Rect{0, 0, 5, 5}))

	content := Clone(src, false).Content()
	if content.Class != ClassView || content.SubviewAt(0).Class != ClassView {
		t.Errorf("classes = %s/%s, want plain views", content.Class, content.SubviewAt(0).Class)
	}
	if fn, ok := DefaultRecipes.Lookup(ClassView); !ok || fn == nil {
		t.Error("plain views should have a built-in recipe")
	}
}

func TestCloneUnknownClassIsPlaceholder(t *testing.T) {
	src := NewViewOfClass("map", "MapView", Rect{0, 0, 10, 10})
	content := Clone(src, false).Content()
	if content.Class != ClassPlaceholder || content.SourceClass != "MapView" {
		t.Errorf("class=%s source=%s", content.Class, content.SourceClass)
	}
}

func TestCloneWithCustomRecipe(t *testing.T) {
	reg := NewRecipeRegistry()
	reg.Register("MapView", func(src *View) *View {
		v := NewView(src.Name, src.Frame)
		v.Class = "MapSnapshot"
		return v
	})
	if _, ok := reg.Lookup("MapView"); !ok {
		t.Fatal("recipe not registered")
	}
	c := &Cloner{Recipes: reg}
	content := c.Clone(NewViewOfClass("map", "MapView", Rect{}), false).Content()
	if content.Class != "MapSnapshot" {
		t.Errorf("class = %s, want MapSnapshot", content.Class)
	}
}

func TestCloneRecipes(t *testing.T) {
	label := NewLabel("label", Rect{}, "Hello", nil)
	label.Text.NumberOfLines = 3
	field := NewTextField("field", Rect{}, "typed", nil)
	field.Text.NumberOfLines = 4

	scroll := NewScrollView("scroll", Rect{0, 0, 100, 100}, Size{100, 500})
	scroll.ContentOffset = Point{0, 40}
	scroll.Scroll.ContentInset = Insets{Top: 10}
	scroll.Scroll.SafeAreaInset = Insets{Top: 20}

	marker := NewMarkerAnnotation("pin", Rect{}, ColorBlack)
	marker.Marker.GlyphText = "A"
	marker.Marker.LeftCalloutAccessory = NewView("accessory", Rect{})

	if c := Clone(label, false).Content(); c.Text.Text != "Hello" || c.Text.NumberOfLines != 3 || c.Text == label.Text {
		t.Error("label text not copied")
	}
	if c := Clone(field, false).Content(); c.Text.Text != "typed" || c.Text.NumberOfLines != 1 {
		t.Error("text field should copy as a single line")
	}
	c := Clone(scroll, false).Content()
	if c.ContentOffset != (Point{0, 40}) || c.Scroll.ContentInset.Top != 30 || c.Scroll.InsetAdjustment != InsetAdjustmentNever {
		t.Errorf("scroll state not frozen: offset=%v inset=%+v", c.ContentOffset, c.Scroll.ContentInset)
	}
	m := Clone(marker, false).Content()
	if m.Marker.GlyphText != "A" || m.Marker.LeftCalloutAccessory != nil {
		t.Error("marker should copy its glyph and drop accessories")
	}
}

func TestCloneMissingPayload(t *testing.T) {
	v := NewView("odd", Rect{})
	v.Class = ClassLabel
	if c := Clone(v, false).Content(); c.Text == nil {
		t.Error("missing payload should copy as empty")
	}
}

func TestCloneCopiesMask(t *testing.T) {
	src := NewView("src", Rect{0, 0, 10, 10})
	src.SetMask(NewView("mask", Rect{0, 0, 5, 5}))
	c := Clone(src, false).Content()
	if c.Mask() == nil || c.Mask() == src.Mask() {
		t.Error("mask should be cloned")
	}
}

func TestCloneShapeLayerDeepCopy(t *testing.T) {
	path := RectPath(Rect{0, 0, 10, 10})
	src := NewView("src", Rect{0, 0, 10, 10})
	src.AddSublayer(NewShapeLayer(Rect{0, 0, 10, 10}, ShapeStyle{Path: path, FillColor: ColorBlack, DashPattern: []float64{2, 2}}))

	l := Clone(src, false).Content().SubviewAt(0).Layer.Sublayers()[0]
	if l.Shape.Path == path || len(l.Shape.Path.Segments) != len(path.Segments) {
		t.Error("shape path should be deep copied")
	}
	if l.Shape.StrokeEnd != 1 || l.Shape.MiterLimit != 10 {
		t.Errorf("shape defaults lost: end=%v miter=%v", l.Shape.StrokeEnd, l.Shape.MiterLimit)
	}
}

func TestSnapshotResizeFillsContent(t *testing.T) {
	snap := Clone(NewView("src", Rect{0, 0, 10, 10}), false)
	snap.SetFrame(Rect{5, 5, 40, 30})
	if got := snap.Content().Frame; got != (Rect{0, 0, 40, 30}) {
		t.Errorf("content frame = %v, want {0 0 40 30}", got)
	}
	snap.SetCornerRadius(9)
	if snap.Content().CornerRadius() != 9 {
		t.Error("corner radius should forward to the content")
	}
}

func TestSnapshotResizeSkipsSystemPlaceholder(t *testing.T) {
	snap := Clone(NewViewOfClass("private", "_Private", Rect{0, 0, 10, 10}), false)
	snap.SetFrame(Rect{0, 0, 40, 40})
	if got := snap.Content().Frame; got != (Rect{0, 0, 10, 10}) {
		t.Errorf("system placeholder resized to %v", got)
	}
}

func TestLayerHostAspectLayout(t *testing.T) {
	src := NewView("src", Rect{0, 0, 100, 50})
	src.AddSublayer(NewLayer(Rect{0, 0, 100, 50}))
	host := Clone(src, false).Content().SubviewAt(0)

	host.SetFrame(Rect{0, 0, 200, 200})
	if got := host.Layer.Sublayers()[0].Frame; got != (Rect{0, 50, 200, 100}) {
		t.Errorf("hosted frame = %v, want {0 50 200 100}", got)
	}
}

func TestPathClone(t *testing.T) {
	var nilPath *Path
	if nilPath.Clone() != nil {
		t.Error("nil path clones to nil")
	}
	p := (&Path{}).MoveTo(0, 0).QuadTo(1, 1, 2, 0).CubicTo(3, 1, 4, 1, 5, 0).LineTo(5, 5).Close()
	if len(p.Segments) != 5 || p.Segments[4].Op != PathClose {
		t.Errorf("segments = %v", p.Segments)
	}
}
