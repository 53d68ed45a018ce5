package handoff

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 6 float64 fields of a View simultaneously.
// Create one via the convenience constructors (TweenFrame, TweenAlpha,
// TweenTransform) and call Update(dt) each frame. If the target view is
// disposed, the group stops immediately without calling OnDone.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [6]*gween.Tween
	ends   [6]float64
	count  int
	fields [6]*float64
	target *View
	Done   bool

	// OnDone, if set, runs once when every tween reached its end.
	OnDone func()
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		if g.tweens[i] == nil {
			*g.fields[i] = g.ends[i]
			continue
		}
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if g.target != nil {
		syncAnimated(g.target)
	}
	if allDone {
		g.Done = true
		if g.OnDone != nil {
			g.OnDone()
		}
	}
}

// Stop ends the group where it is. OnDone does not run.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	i := g.count
	g.fields[i] = field
	g.ends[i] = to
	if duration > 0 {
		g.tweens[i] = gween.New(float32(*field), float32(to), duration, fn)
	}
	g.count++
}

// TweenFrame creates a TweenGroup that animates view.Frame to the given
// rectangle over the specified duration using the easing function.
func TweenFrame(view *View, to Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: view}
	g.add(&view.Frame.X, to.X, duration, fn)
	g.add(&view.Frame.Y, to.Y, duration, fn)
	g.add(&view.Frame.Width, to.Width, duration, fn)
	g.add(&view.Frame.Height, to.Height, duration, fn)
	return g
}

// TweenAlpha creates a TweenGroup that animates view.Alpha to the target
// value over the specified duration using the easing function.
func TweenAlpha(view *View, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: view}
	g.add(&view.Alpha, to, duration, fn)
	return g
}

// TweenTransform creates a TweenGroup that animates each component of
// view.Transform to the target matrix over the specified duration.
func TweenTransform(view *View, to Affine, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: view}
	for i := range view.Transform {
		g.add(&view.Transform[i], to[i], duration, fn)
	}
	return g
}
