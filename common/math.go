package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units into screen pixels.
	PixelsPerUnit = 64.0

	// normalizeEpsilon matches the cut-off below which a direction is
	// treated as no input at all.
	normalizeEpsilon = 1e-5
)

// Lerp is exact at both ends: t=0 yields a and t=1 yields b.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Ratio returns elapsed/duration clamped to [0,1]. A non-positive duration
// is an instant transition and always yields 1.
func Ratio(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(elapsed / duration)
}

// IsZero reports whether v is too short to carry a direction.
func IsZero(v cp.Vector) bool {
	return v.Length() < normalizeEpsilon
}

// Normalize returns the unit vector of v, or the zero vector when v is
// too short to carry a direction.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < normalizeEpsilon {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// LerpVector interpolates from a to b with t clamped to [0,1].
func LerpVector(a, b cp.Vector, t float64) cp.Vector {
	return a.Lerp(b, Clamp01(t))
}

func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
