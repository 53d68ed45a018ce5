// Package handoff choreographs snapshot-based transitions between screens
// of a retained view tree rendered with [Ebitengine].
//
// A transition never animates live views. Each screen declares the views
// that take part, the engine clones them into inert snapshots inside a
// shared container, hides the originals, animates the snapshots and finally
// removes them and restores what it hid.
//
// # Declaring participants
//
// A screen implements [Transitionable] and returns [TransitioningView]
// values. Each pairs a [View] with a [Style] that says how it moves:
//
//	func (s *Detail) TransitioningViews(other handoff.Transitionable, dest bool) []*handoff.TransitioningView {
//		return []*handoff.TransitioningView{
//			handoff.NewTransitioningView(s.photo, handoff.Match("photo", true), 1, handoff.DefaultViewConfig()),
//			handoff.NewTransitioningView(s.list, handoff.MoveOut(handoff.DirectionDown, handoff.Cascade(0.05, 0)), 0, handoff.DefaultViewConfig()),
//		}
//	}
//
// Match and MoveTo pair a view with a view of the same ID on the other
// screen. MoveOut, PageOut and SplitContent containers are expanded into
// one participant per visible child, so cells leave one after another.
// Navigation and tab bars of [StackScreen] and [TabScreen] hosts slide out
// on their own.
//
// # Running a transition
//
// A [Delegate] builds transitions from a [Config], which can be loaded from
// YAML with [LoadConfig]. The host drives the timeline each frame:
//
//	d := handoff.NewDelegate(cfg)
//	t := d.PresentTransition()
//	ctx := handoff.NewTransitionContext(window, list, detail)
//	if err := t.Animate(ctx); err != nil {
//		return err
//	}
//
//	func (g *Game) Update() error { g.t.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { handoff.Draw(s, g.window) }
//
// The timeline is an [Animator]: interruptible, scrubbable and reversible.
// Interactive dismissals wrap a transition in an [InteractiveTransition]
// and feed pan samples through a [DismissalInteraction] or [PullToDismiss].
//
// # Snapshots
//
// [Cloner] copies a view tree through a [RecipeRegistry] keyed by view
// class. Hosts register recipes for their own classes; unknown classes
// snapshot as placeholders.
//
// # Logging
//
// The package logs through [log/slog]. It is silent by default; call
// [SetLogger] to route records to a handler, and [SetDebugMode] to enable
// the debug checks and per-stage timings.
//
// [Ebitengine]: https://ebitengine.org
package handoff
