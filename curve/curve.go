// Package curve evaluates authored response curves over normalized time.
//
// Callers pass elapsed/duration and must request Evaluate(1) once the
// elapsed time reaches the duration so the terminal value is always hit.
package curve

import "errors"

var ErrInvalidCurve = errors.New("curve: invalid curve")

// Curve maps normalized time to an output value.
type Curve interface {
	Evaluate(t float64) float64
}

// Func adapts a plain function to Curve.
type Func func(t float64) float64

func (f Func) Evaluate(t float64) float64 {
	if f == nil {
		return t
	}
	return f(t)
}

// Linear is the identity curve used whenever no curve is authored.
var Linear Curve = Func(func(t float64) float64 { return t })

// Instant jumps straight to the terminal value.
var Instant Curve = Func(func(float64) float64 { return 1 })

// OrLinear returns c, or Linear when c is nil.
func OrLinear(c Curve) Curve {
	if c == nil {
		return Linear
	}
	return c
}

// Sample evaluates c at n evenly spaced points in [0,1].
func Sample(c Curve, n int) []float64 {
	c = OrLinear(c)
	if n < 2 {
		return []float64{c.Evaluate(1)}
	}
	out := make([]float64, n)
	for i := range n {
		out[i] = c.Evaluate(float64(i) / float64(n-1))
	}
	return out
}
