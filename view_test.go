package handoff

import (
	"strings"
	"testing"
)

func TestNewViewDefaults(t *testing.T) {
	v := NewView("v", Rect{0, 0, 10, 10})
	if v.Alpha != 1 || !v.Transform.IsIdentity() || !v.UserInteractionEnabled {
		t.Errorf("unexpected defaults: alpha=%v transform=%v interaction=%v", v.Alpha, v.Transform, v.UserInteractionEnabled)
	}
	if v.Layer == nil || v.Layer.Owner() != v {
		t.Fatal("view should own its layer")
	}
	if v.ID == 0 {
		t.Error("ID should be assigned")
	}
	if w := NewView("w", Rect{}); w.ID == v.ID {
		t.Error("IDs should be unique")
	}
}

func TestConstructorsSetClass(t *testing.T) {
	tests := []struct {
		v     *View
		class string
	}{
		{NewLabel("l", Rect{}, "hi", nil), ClassLabel},
		{NewTextField("f", Rect{}, "", nil), ClassTextField},
		{NewButton("b", Rect{}, nil), ClassButton},
		{NewImageView("i", Rect{}, nil), ClassImageView},
		{NewScrollView("s", Rect{}, Size{}), ClassScrollView},
		{NewCollectionView("c", Rect{}, Size{}), ClassCollectionView},
		{NewActivityIndicator("a", Rect{}, ActivityStyleLarge), ClassActivityIndicator},
		{NewVisualEffectView("e", Rect{}, BlurStyleDark), ClassVisualEffectView},
		{NewMarkerAnnotation("m", Rect{}, ColorBlack), ClassMarkerAnnotation},
		{NewScrollIndicator("ind", Rect{}), ClassScrollIndicator},
	}
	for _, tt := range tests {
		if tt.v.Class != tt.class {
			t.Errorf("%s: class = %q, want %q", tt.v.Name, tt.v.Class, tt.class)
		}
	}
	if !NewCollectionView("c", Rect{}, Size{}).IsScrollable() {
		t.Error("collection views scroll")
	}
	if !NewScrollIndicator("i", Rect{}).IsScrollIndicator() {
		t.Error("IsScrollIndicator = false")
	}
}

func TestAddSubview(t *testing.T) {
	parent := NewView("parent", Rect{})
	child := NewView("child", Rect{})
	parent.AddSubview(child)

	if child.Superview != parent {
		t.Error("superview not set")
	}
	if parent.NumSubviews() != 1 || parent.SubviewAt(0) != child {
		t.Error("child not in subviews")
	}
	if len(parent.Layer.Sublayers()) != 1 || parent.Layer.Sublayers()[0] != child.Layer {
		t.Error("child layer not in sublayers")
	}
}

func TestAddSubviewReparents(t *testing.T) {
	a := NewView("a", Rect{})
	b := NewView("b", Rect{})
	child := NewView("child", Rect{})
	a.AddSubview(child)
	b.AddSubview(child)

	if a.NumSubviews() != 0 || len(a.Layer.Sublayers()) != 0 {
		t.Error("child should be removed from old superview")
	}
	if child.Superview != b {
		t.Error("child should be attached to new superview")
	}
}

func TestInsertSubviewAtKeepsLayerOrder(t *testing.T) {
	parent := NewView("parent", Rect{})
	a := NewView("a", Rect{})
	b := NewView("b", Rect{})
	bare := NewLayer(Rect{})
	parent.AddSubview(a)
	parent.AddSublayer(bare)
	parent.InsertSubviewAt(b, 0)

	if parent.SubviewAt(0) != b || parent.SubviewAt(1) != a {
		t.Fatalf("subview order wrong")
	}
	layers := parent.Layer.Sublayers()
	if len(layers) != 3 || layers[0] != b.Layer || layers[1] != a.Layer || layers[2] != bare {
		t.Errorf("layer order wrong: %v", layers)
	}
}

func TestAddSubviewCyclePanics(t *testing.T) {
	parent := NewView("parent", Rect{})
	child := NewView("child", Rect{})
	parent.AddSubview(child)

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "cycle") {
			t.Errorf("expected cycle panic, got %v", r)
		}
	}()
	child.AddSubview(parent)
}

func TestAddNilSubviewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil subview")
		}
	}()
	NewView("v", Rect{}).AddSubview(nil)
}

func TestAddSublayerOwnedPanics(t *testing.T) {
	parent := NewView("parent", Rect{})
	other := NewView("other", Rect{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic when adding a view's layer as a bare layer")
		}
	}()
	parent.AddSublayer(other.Layer)
}

func TestRemoveFromSuperview(t *testing.T) {
	parent := NewView("parent", Rect{})
	child := NewView("child", Rect{})
	parent.AddSubview(child)
	child.RemoveFromSuperview()

	if child.Superview != nil || parent.NumSubviews() != 0 || len(parent.Layer.Sublayers()) != 0 {
		t.Error("child not detached")
	}
	child.RemoveFromSuperview() // no-op
}

func TestDescendant(t *testing.T) {
	root := NewView("root", Rect{})
	a := NewView("a", Rect{})
	b := NewView("b", Rect{})
	root.AddSubview(a)
	a.AddSubview(b)

	if root.Descendant(0, 0) != b {
		t.Error("Descendant(0,0) should be b")
	}
	if root.Descendant() != root {
		t.Error("empty path should return root")
	}
	if root.Descendant(0, 3) != nil || root.Descendant(-1) != nil {
		t.Error("out of range path should return nil")
	}
}

func TestDisposeRecursive(t *testing.T) {
	parent := NewView("parent", Rect{})
	child := NewView("child", Rect{})
	grand := NewView("grand", Rect{})
	parent.AddSubview(child)
	child.AddSubview(grand)
	child.SetMask(NewView("mask", Rect{}))

	child.Dispose()
	if !child.IsDisposed() || !grand.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if parent.NumSubviews() != 0 {
		t.Error("disposed view should leave its superview")
	}
	if child.Mask() != nil || child.ID != 0 {
		t.Error("disposed view should release its state")
	}
	if parent.IsDisposed() {
		t.Error("parent should not be disposed")
	}
	child.Dispose() // second call is a no-op
}

func TestLayoutIfNeededRunsOnLayout(t *testing.T) {
	root := NewView("root", Rect{})
	child := NewView("child", Rect{})
	root.AddSubview(child)

	var calls []string
	root.OnLayout = func(v *View) { calls = append(calls, v.Name) }
	child.OnLayout = func(v *View) { calls = append(calls, v.Name) }
	child.SetNeedsLayout()
	root.LayoutIfNeeded()

	if len(calls) != 2 || calls[0] != "root" || calls[1] != "child" {
		t.Errorf("layout calls = %v, want [root child]", calls)
	}
	root.LayoutIfNeeded()
	if len(calls) != 2 {
		t.Error("layout should only run when needed")
	}
}

func TestSetCornerRadius(t *testing.T) {
	v := NewView("v", Rect{0, 0, 10, 10})
	v.SetCornerRadius(4)
	if v.CornerRadius() != 4 {
		t.Errorf("CornerRadius = %v", v.CornerRadius())
	}
}

func TestContentOfPlainView(t *testing.T) {
	v := NewView("v", Rect{})
	if v.Content() != v || v.IsSnapshot() {
		t.Error("plain views are their own content")
	}
	if v.Path() != nil {
		t.Error("live views have no snapshot path")
	}
}

// --- Mask ---

func TestSetMask(t *testing.T) {
	v := NewView("target", Rect{0, 0, 32, 32})
	m := NewView("mask", Rect{0, 0, 32, 32})
	if v.Mask() != nil {
		t.Error("Mask should be nil by default")
	}
	v.SetMask(m)
	if v.Mask() != m {
		t.Error("Mask should return the mask view")
	}
	if m.Superview != nil {
		t.Error("mask view should not be in the view tree")
	}
	if got := v.ClearMask(); got != m || v.Mask() != nil {
		t.Error("ClearMask should detach and return the mask")
	}
	if v.ClearMask() != nil {
		t.Error("clearing an unmasked view returns nil")
	}
}

func TestSetMaskDetachesFromTree(t *testing.T) {
	parent := NewView("parent", Rect{})
	m := NewView("mask", Rect{})
	parent.AddSubview(m)

	v := NewView("target", Rect{})
	v.SetMask(m)
	if m.Superview != nil || parent.NumSubviews() != 0 {
		t.Error("a mask leaves the view tree")
	}

	v.Dispose()
	v.SetMask(NewView("late", Rect{}))
	if v.Mask() != nil {
		t.Error("disposed views ignore SetMask")
	}
}

func TestPlaceMaskAt(t *testing.T) {
	v := NewView("target", Rect{20, 100, 200, 200})
	v.placeMaskAt(Point{40, 120}, Size{50, 60})

	m := NewView("mask", Rect{})
	v.SetMask(m)
	v.placeMaskAt(Point{40, 120}, Size{50, 60})
	if m.Frame != (Rect{20, 20, 50, 60}) {
		t.Errorf("mask frame = %v, want relative to the masked view", m.Frame)
	}
}
