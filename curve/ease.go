package curve

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

var presets = map[string]Curve{
	"linear":         Linear,
	"instant":        Instant,
	"ease_in":        Func(easeInQuad),
	"ease_out":       Func(easeOutQuad),
	"ease_in_cubic":  Func(easeInCubic),
	"ease_out_cubic": Func(easeOutCubic),
	"ease_in_out":    Func(easeInOutCubic),
	"smoothstep":     Func(smoothstep),
	"ease_out_expo":  Func(easeOutExpo),
}

func easeInQuad(t float64) float64 {
	return t * t
}

func easeOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

func easeInCubic(t float64) float64 {
	return t * t * t
}

func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func easeOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Preset looks up a named easing curve.
func Preset(name string) (Curve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Linear, nil
	}
	c, ok := presets[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidCurve, name)
	}
	return c, nil
}

// PresetNames lists the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CubicBezier returns a curve matching CSS cubic-bezier(x1, y1, x2, y2).
// The curve starts at (0,0) and ends at (1,1); x1 and x2 must be in [0,1].
func CubicBezier(x1, y1, x2, y2 float64) (Curve, error) {
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, fmt.Errorf("%w: bezier x control points must be in [0,1]", ErrInvalidCurve)
	}
	return Func(func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for range 8 {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierSample(y1, y2, u)
			}
			dx := bezierDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Newton failed to converge, fall back to bisection.
		lo, hi := 0.0, 1.0
		u = math.Min(math.Max(u, 0), 1)
		for range 20 {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}
		return bezierSample(y1, y2, u)
	}), nil
}

func bezierSample(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierDerivative(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}
