package handoff

import "fmt"

// StyleKind is the role tag of a Style.
type StyleKind uint8

const (
	// StyleFade appears or disappears in place via opacity only.
	StyleFade StyleKind = iota
	// StyleMoveWith follows the translation of a parent participant.
	StyleMoveWith
	// StyleMatch morphs position and size between two views sharing an ID.
	StyleMatch
	// StyleMoveTo moves between two views sharing an ID; size stays the source's.
	StyleMoveTo
	// StyleMoveOut slides fully off-screen in a direction.
	StyleMoveOut
	// StylePageOut slides by one container size in a direction.
	StylePageOut
	// StyleSplitContent sends the children on either side of a center view
	// in opposite directions.
	StyleSplitContent
)

var styleKindNames = [...]string{
	StyleFade:         "fade",
	StyleMoveWith:     "moveWith",
	StyleMatch:        "match",
	StyleMoveTo:       "moveTo",
	StyleMoveOut:      "moveOut",
	StylePageOut:      "pageOut",
	StyleSplitContent: "splitContent",
}

func (k StyleKind) String() string {
	if int(k) < len(styleKindNames) {
		return styleKindNames[k]
	}
	return fmt.Sprintf("StyleKind(%d)", k)
}

// AlphaStrategyKind selects how a moving participant sheds opacity.
type AlphaStrategyKind uint8

const (
	AlphaNone AlphaStrategyKind = iota
	AlphaFade
	AlphaCascade
)

// AlphaStrategy describes the opacity change of moveOut, pageOut and
// splitContent participants. Cascade additionally staggers extracted
// children by a per-step delay.
type AlphaStrategy struct {
	Kind   AlphaStrategyKind
	delay  float64
	change float64
}

// NoAlphaChange keeps the participant fully opaque.
func NoAlphaChange() AlphaStrategy { return AlphaStrategy{Kind: AlphaNone} }

// FadeAlpha sheds the given fraction of opacity.
func FadeAlpha(alphaChange float64) AlphaStrategy {
	return AlphaStrategy{Kind: AlphaFade, change: alphaChange}
}

// Cascade sheds the given fraction of opacity and delays each extracted
// child by one more step of delay than the previous one.
func Cascade(delay, alphaChange float64) AlphaStrategy {
	return AlphaStrategy{Kind: AlphaCascade, delay: delay, change: alphaChange}
}

// Delay returns the per-step cascade delay in [0,1]; zero for other kinds.
func (a AlphaStrategy) Delay() float64 {
	if a.Kind != AlphaCascade {
		return 0
	}
	return clamp01(a.delay)
}

// AlphaChange returns the fraction of opacity to shed, in [0,1].
func (a AlphaStrategy) AlphaChange() float64 {
	if a.Kind == AlphaNone {
		return 0
	}
	return clamp01(a.change)
}

func (a AlphaStrategy) String() string {
	switch a.Kind {
	case AlphaFade:
		return fmt.Sprintf("fade(%g)", a.AlphaChange())
	case AlphaCascade:
		return fmt.Sprintf("cascade(%g, %g)", a.Delay(), a.AlphaChange())
	default:
		return "none"
	}
}

// Style is the role of a participant together with its role payload. Build
// one with the constructors; only the fields of the given Kind are used.
type Style struct {
	Kind StyleKind

	// moveWith
	Parent *TransitioningView

	// match, moveTo
	ID string

	// moveWith, match, moveTo
	CrossFades bool

	// moveOut, pageOut
	Direction Direction

	// moveOut, pageOut, splitContent
	Alpha AlphaStrategy

	// splitContent
	Axis       Axis
	Center     *View
	KeepCenter bool
}

// Fade returns the fade style.
func Fade() Style { return Style{Kind: StyleFade} }

// MoveWith returns a style that follows parent's translation.
func MoveWith(parent *TransitioningView, crossFades bool) Style {
	return Style{Kind: StyleMoveWith, Parent: parent, CrossFades: crossFades}
}

// Match returns a style that morphs into the counterpart declaring the same id.
func Match(id string, crossFades bool) Style {
	return Style{Kind: StyleMatch, ID: id, CrossFades: crossFades}
}

// MoveTo returns a style that moves onto the counterpart declaring the same id.
func MoveTo(id string, crossFades bool) Style {
	return Style{Kind: StyleMoveTo, ID: id, CrossFades: crossFades}
}

// MoveOut returns a style that slides off-screen towards dir.
func MoveOut(dir Direction, alpha AlphaStrategy) Style {
	return Style{Kind: StyleMoveOut, Direction: dir, Alpha: alpha}
}

// PageOut returns a style that slides one container size towards dir.
func PageOut(dir Direction, alpha AlphaStrategy) Style {
	return Style{Kind: StylePageOut, Direction: dir, Alpha: alpha}
}

// SplitContent returns a style that splits a container's children around
// center along axis.
func SplitContent(axis Axis, center *View, keepCenter bool, alpha AlphaStrategy) Style {
	return Style{Kind: StyleSplitContent, Axis: axis, Center: center, KeepCenter: keepCenter, Alpha: alpha}
}

// SameKind reports whether both styles have the same role, ignoring payload.
func (s Style) SameKind(o Style) bool {
	return s.Kind == o.Kind
}

// IsMoving reports whether the style slides its participant out.
func (s Style) IsMoving() bool {
	return s.Kind == StyleMoveOut || s.Kind == StylePageOut
}

// IsPaired reports whether the style pairs a from view with a to view.
func (s Style) IsPaired() bool {
	return s.Kind == StyleMatch || s.Kind == StyleMoveTo
}

func (s Style) String() string {
	switch s.Kind {
	case StyleMoveWith:
		return fmt.Sprintf("moveWith(crossFades=%t)", s.CrossFades)
	case StyleMatch, StyleMoveTo:
		return fmt.Sprintf("%s(%q, crossFades=%t)", s.Kind, s.ID, s.CrossFades)
	case StyleMoveOut, StylePageOut:
		return fmt.Sprintf("%s(%s, %s)", s.Kind, s.Direction, s.Alpha)
	case StyleSplitContent:
		return fmt.Sprintf("splitContent(%s, keepCenter=%t, %s)", s.Axis, s.KeepCenter, s.Alpha)
	default:
		return s.Kind.String()
	}
}

// ViewConfig is the timing window and snapshot options of a participant.
// Always build it with NewViewConfig or DefaultViewConfig so the window
// invariants hold.
type ViewConfig struct {
	duration     float64
	delay        float64
	HideSubviews bool
	Mask         *TransitioningView
}

// NewViewConfig clamps duration and delay to [0,1] and then shortens
// duration so that delay+duration never exceeds 1.
func NewViewConfig(duration, delay float64, hideSubviews bool, mask *TransitioningView) ViewConfig {
	duration = clamp01(duration)
	delay = clamp01(delay)
	if duration+delay > 1 {
		duration = 1 - delay
	}
	return ViewConfig{duration: duration, delay: delay, HideSubviews: hideSubviews, Mask: mask}
}

// DefaultViewConfig spans the whole transition.
func DefaultViewConfig() ViewConfig {
	return NewViewConfig(1, 0, false, nil)
}

// Duration returns the relative duration.
func (c ViewConfig) Duration() float64 { return c.duration }

// Delay returns the relative delay.
func (c ViewConfig) Delay() float64 { return c.delay }

// Window returns the [delay, delay+duration] slice of the transition.
func (c ViewConfig) Window() (start, end float64) {
	return c.delay, c.delay + c.duration
}

// TransitioningView declares that a live view takes part in a transition.
type TransitioningView struct {
	View     *View
	Style    Style
	Priority int
	Config   ViewConfig

	// Set by the extraction pass.
	source        *TransitioningView // declaration this one was derived from
	extractedFrom *TransitioningView // container this one was extracted from
	expanded      bool
}

// NewTransitioningView declares view with the given style. Negative
// priorities are raised to zero.
func NewTransitioningView(view *View, style Style, priority int, cfg ViewConfig) *TransitioningView {
	if priority < 0 {
		priority = 0
	}
	return &TransitioningView{View: view, Style: style, Priority: priority, Config: cfg}
}

// AlphaChange returns the fraction of opacity this participant sheds.
func (tv *TransitioningView) AlphaChange() float64 {
	switch tv.Style.Kind {
	case StyleMoveWith, StyleMatch, StyleMoveTo:
		if tv.Style.CrossFades {
			return 1
		}
		return 0
	case StyleFade:
		return 1
	default:
		return tv.Style.Alpha.AlphaChange()
	}
}

// ExtractedFrom returns the container declaration this participant was
// extracted from, or nil.
func (tv *TransitioningView) ExtractedFrom() *TransitioningView {
	return tv.extractedFrom
}

// origin returns the declaration tv was derived from, following copies made
// by the extraction pass.
func (tv *TransitioningView) origin() *TransitioningView {
	for tv.source != nil {
		tv = tv.source
	}
	return tv
}

func (tv *TransitioningView) String() string {
	name := "<nil>"
	if tv.View != nil {
		name = tv.View.Name
	}
	return fmt.Sprintf("%s %s p=%d [%g+%g]", name, tv.Style, tv.Priority, tv.Config.delay, tv.Config.duration)
}
