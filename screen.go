package handoff

import "math"

// Screen is a presentable unit of UI with a root view.
type Screen interface {
	RootView() *View
}

// Transitionable is a screen that declares which of its views take part in
// a transition with counterpart. isDestination is set on the screen being
// shown.
type Transitionable interface {
	Screen
	TransitioningViews(counterpart Transitionable, isDestination bool) []*TransitioningView
}

// StackScreen is a navigation stack. Its top screen takes part in
// transitions and its navigation bar slides out upwards.
type StackScreen interface {
	Screen
	TopScreen() Screen
	NavigationBar() *View
}

// TabScreen is a tab container. Its selected screen takes part in
// transitions and its tab bar slides out downwards.
type TabScreen interface {
	Screen
	SelectedScreen() Screen
	TabBar() *View
}

// AppearanceObserver is notified around the transition that shows or hides
// a screen.
type AppearanceObserver interface {
	BeginAppearanceTransition(appearing bool)
	EndAppearanceTransition()
}

// DismissalScroller exposes the scroll view that gates interactive
// dismissal: the gesture may only begin while it is scrolled to the top.
type DismissalScroller interface {
	DismissalScrollView() *View
}

// ResolveParticipant descends through stacks and tabs to the innermost
// transitionable screen.
func ResolveParticipant(s Screen) (Transitionable, bool) {
	for depth := 0; s != nil && depth < 64; depth++ {
		switch c := s.(type) {
		case Transitionable:
			return c, true
		case TabScreen:
			s = c.SelectedScreen()
		case StackScreen:
			s = c.TopScreen()
		default:
			return nil, false
		}
	}
	return nil, false
}

// OverlayViews synthesizes the chrome participants of s: a stack's
// navigation bar and a tab container's tab bar. They are drawn above every
// declared participant.
func OverlayViews(s Screen) []*TransitioningView {
	var out []*TransitioningView
	if st, ok := s.(StackScreen); ok {
		if bar := st.NavigationBar(); bar != nil {
			out = append(out, NewTransitioningView(bar, MoveOut(DirectionUp, NoAlphaChange()), math.MaxInt, DefaultViewConfig()))
		}
	}
	if tb, ok := s.(TabScreen); ok {
		if bar := tb.TabBar(); bar != nil {
			out = append(out, NewTransitioningView(bar, MoveOut(DirectionDown, NoAlphaChange()), math.MaxInt, DefaultViewConfig()))
		}
	}
	return out
}

// Stack is a basic StackScreen: the last screen is on top.
type Stack struct {
	Root    *View
	Bar     *View
	Screens []Screen
}

func (s *Stack) RootView() *View { return s.Root }
func (s *Stack) NavigationBar() *View { return s.Bar }
func (s *Stack) TopScreen() Screen {
	if len(s.Screens) == 0 {
		return nil
	}
	return s.Screens[len(s.Screens)-1]
}

// Push adds a screen on top.
func (s *Stack) Push(sc Screen) { s.Screens = append(s.Screens, sc) }

// Tabs is a basic TabScreen.
type Tabs struct {
	Root     *View
	Bar      *View
	Screens  []Screen
	Selected int
}

func (t *Tabs) RootView() *View { return t.Root }
func (t *Tabs) TabBar() *View { return t.Bar }
func (t *Tabs) SelectedScreen() Screen {
	if t.Selected < 0 || t.Selected >= len(t.Screens) {
		return nil
	}
	return t.Screens[t.Selected]
}
