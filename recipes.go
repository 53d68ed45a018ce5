package handoff

import "strings"

// Recipe produces the class-specific part of a snapshot copy of src: a fresh
// view carrying src's frame and the payload state that matters for drawing.
// Base view and layer properties are copied by the cloner afterwards.
type Recipe func(src *View) *View

// LayerRecipe produces the kind-specific part of a bare layer copy.
type LayerRecipe func(src *Layer) *Layer

// RecipeRegistry maps view classes and layer kinds to their copy recipes.
// Classes without an entry fall back to the placeholder recipe.
type RecipeRegistry struct {
	views  map[string]Recipe
	layers map[LayerKind]LayerRecipe
}

// NewRecipeRegistry returns a registry preloaded with the built-in recipes.
func NewRecipeRegistry() *RecipeRegistry {
	r := &RecipeRegistry{
		views:  make(map[string]Recipe),
		layers: make(map[LayerKind]LayerRecipe),
	}
	r.Register(ClassView, copyView)
	r.Register(ClassLabel, copyLabel)
	r.Register(ClassTextField, copyTextField)
	r.Register(ClassButton, copyButton)
	r.Register(ClassImageView, copyImageView)
	r.Register(ClassScrollView, copyScrollView)
	r.Register(ClassCollectionView, copyScrollView)
	r.Register(ClassActivityIndicator, copyActivityIndicator)
	r.Register(ClassVisualEffectView, copyVisualEffect)
	r.Register(ClassMarkerAnnotation, copyMarker)
	r.RegisterLayer(LayerGradient, copyGradientLayer)
	r.RegisterLayer(LayerShape, copyShapeLayer)
	return r
}

// Register sets the recipe for a view class, replacing any previous one.
func (r *RecipeRegistry) Register(class string, fn Recipe) {
	r.views[class] = fn
}

// RegisterLayer sets the recipe for a layer kind, replacing any previous one.
func (r *RecipeRegistry) RegisterLayer(kind LayerKind, fn LayerRecipe) {
	r.layers[kind] = fn
}

// Lookup returns the recipe for class and whether one was registered.
func (r *RecipeRegistry) Lookup(class string) (Recipe, bool) {
	fn, ok := r.views[class]
	return fn, ok
}

// recipeFor returns the registered recipe or the placeholder fallback.
func (r *RecipeRegistry) recipeFor(class string) Recipe {
	if fn, ok := r.views[class]; ok {
		return fn
	}
	return copyPlaceholder
}

// layerRecipeFor returns the registered layer recipe or the plain copy.
func (r *RecipeRegistry) layerRecipeFor(kind LayerKind) LayerRecipe {
	if fn, ok := r.layers[kind]; ok {
		return fn
	}
	return copyPlainLayer
}

// DefaultRecipes is the registry used by the zero Cloner.
var DefaultRecipes = NewRecipeRegistry()

// isSystemOwned reports whether a class belongs to the toolkit itself rather
// than the host; by convention such classes start with an underscore.
func isSystemOwned(class string) bool {
	return strings.HasPrefix(class, "_")
}

// --- View recipes ---

// blank returns an inert view with src's frame and the given class.
func blank(src *View, class string) *View {
	v := NewView(src.Name, src.Frame)
	v.Class = class
	v.UserInteractionEnabled = false
	return v
}

func copyPlaceholder(src *View) *View {
	return blank(src, ClassPlaceholder)
}

func copyView(src *View) *View {
	return blank(src, ClassView)
}

func copyLabel(src *View) *View {
	v := blank(src, ClassLabel)
	if src.Text != nil {
		t := *src.Text
		v.Text = &t
	} else {
		v.Text = &TextContent{}
	}
	return v
}

func copyTextField(src *View) *View {
	v := blank(src, ClassTextField)
	if src.Text != nil {
		v.Text = &TextContent{
			Text:                      src.Text.Text,
			Font:                      src.Text.Font,
			Color:                     src.Text.Color,
			NumberOfLines:             1,
			Alignment:                 src.Text.Alignment,
			AdjustsFontSizeToFitWidth: src.Text.AdjustsFontSizeToFitWidth,
		}
	} else {
		v.Text = &TextContent{NumberOfLines: 1}
	}
	return v
}

func copyButton(src *View) *View {
	v := blank(src, ClassButton)
	v.Button = &ButtonContent{}
	if src.Button != nil {
		for s := ControlStateNormal; s < numControlStates; s++ {
			v.Button.BackgroundImages[s] = src.Button.BackgroundImages[s]
		}
		v.Button.State = src.Button.State
	}
	return v
}

func copyImageView(src *View) *View {
	v := blank(src, ClassImageView)
	if src.Image != nil {
		img := *src.Image
		v.Image = &img
	} else {
		v.Image = &ImageContent{}
	}
	return v
}

func copyScrollView(src *View) *View {
	v := blank(src, src.Class)
	v.ContentOffset = src.ContentOffset
	if src.Scroll != nil {
		v.Scroll = &ScrollContent{
			ContentSize:              src.Scroll.ContentSize,
			ContentInset:             src.Scroll.AdjustedContentInset(),
			InsetAdjustment:          InsetAdjustmentNever,
			ShowsVerticalIndicator:   src.Scroll.ShowsVerticalIndicator,
			ShowsHorizontalIndicator: src.Scroll.ShowsHorizontalIndicator,
		}
	} else {
		v.Scroll = &ScrollContent{}
	}
	return v
}

func copyActivityIndicator(src *View) *View {
	v := blank(src, ClassActivityIndicator)
	if src.Activity != nil {
		a := *src.Activity
		v.Activity = &a
	} else {
		v.Activity = &ActivityContent{}
	}
	return v
}

func copyVisualEffect(src *View) *View {
	v := blank(src, ClassVisualEffectView)
	if src.Effect != nil {
		e := *src.Effect
		v.Effect = &e
	} else {
		v.Effect = &EffectContent{}
	}
	return v
}

func copyMarker(src *View) *View {
	v := blank(src, ClassMarkerAnnotation)
	if src.Marker != nil {
		m := *src.Marker
		m.LeftCalloutAccessory = nil
		m.RightCalloutAccessory = nil
		v.Marker = &m
	} else {
		v.Marker = &MarkerContent{}
	}
	return v
}

// --- Layer recipes ---

func copyPlainLayer(*Layer) *Layer {
	return newLayer(LayerPlain)
}

func copyGradientLayer(src *Layer) *Layer {
	l := newLayer(LayerGradient)
	if src.Gradient != nil {
		l.Gradient = &Gradient{
			Start:     src.Gradient.Start,
			End:       src.Gradient.End,
			Locations: append([]float64(nil), src.Gradient.Locations...),
			Colors:    append([]Color(nil), src.Gradient.Colors...),
		}
	}
	return l
}

func copyShapeLayer(src *Layer) *Layer {
	l := newLayer(LayerShape)
	if src.Shape != nil {
		s := *src.Shape
		s.Path = src.Shape.Path.Clone()
		s.DashPattern = append([]float64(nil), src.Shape.DashPattern...)
		l.Shape = &s
	}
	return l
}
