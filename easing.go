package handoff

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween/ease"
)

// curves maps configuration names to easing functions.
var curves = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"easeIn":       ease.InCubic,
	"easeOut":      ease.OutCubic,
	"easeInOut":    ease.InOutCubic,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// Curve returns the easing function registered under name.
func Curve(name string) (ease.TweenFunc, error) {
	if fn, ok := curves[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown curve %q", name)
}

// CurveNames returns the registered curve names in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spring returns a damped spring curve that settles on the end value at the
// end of the duration. damping is the damping ratio; values below 1
// overshoot.
func Spring(damping float64) ease.TweenFunc {
	if damping <= 0 {
		damping = 0.01
	}
	// Natural frequency chosen so the envelope has decayed to ~0.1% at t=d.
	omega := 7 / damping
	return func(t, b, c, d float32) float32 {
		if d <= 0 || t >= d {
			return b + c
		}
		p := float64(t / d)
		var x float64
		if damping < 1 {
			wd := omega * math.Sqrt(1-damping*damping)
			env := math.Exp(-damping * omega * p)
			x = 1 - env*(math.Cos(wd*p)+damping*omega/wd*math.Sin(wd*p))
		} else {
			env := math.Exp(-omega * p)
			x = 1 - env*(1+omega*p)
		}
		return b + c*float32(x)
	}
}
