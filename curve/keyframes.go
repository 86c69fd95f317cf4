package curve

import (
	"fmt"
	"math"
	"sort"
)

// Keyframe is one authored point of a keyframe table. Tangents are slopes
// in value-per-time and only matter for Hermite tables.
type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in"`
	OutTangent float64 `yaml:"out"`
}

// Keyframes is a piecewise interpolation table. Evaluation outside the
// authored time range holds the first or last value.
type Keyframes struct {
	keys    []Keyframe
	hermite bool
}

// NewKeyframes builds a linear table. Times must be strictly increasing.
func NewKeyframes(keys ...Keyframe) (*Keyframes, error) {
	return newKeyframes(keys, false)
}

// NewHermiteKeyframes builds a table that interpolates each segment with a
// cubic Hermite spline using the keys' tangents.
func NewHermiteKeyframes(keys ...Keyframe) (*Keyframes, error) {
	return newKeyframes(keys, true)
}

func newKeyframes(keys []Keyframe, hermite bool) (*Keyframes, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: keyframe table is empty", ErrInvalidCurve)
	}
	for i, k := range keys {
		if math.IsNaN(k.Time) || math.IsNaN(k.Value) || math.IsInf(k.Time, 0) || math.IsInf(k.Value, 0) {
			return nil, fmt.Errorf("%w: keyframe %d is not finite", ErrInvalidCurve, i)
		}
		if i > 0 && k.Time <= keys[i-1].Time {
			return nil, fmt.Errorf("%w: keyframe %d time %v is not after %v", ErrInvalidCurve, i, k.Time, keys[i-1].Time)
		}
	}
	return &Keyframes{
		keys:    append([]Keyframe(nil), keys...),
		hermite: hermite,
	}, nil
}

// Keys returns a copy of the table.
func (k *Keyframes) Keys() []Keyframe {
	if k == nil {
		return nil
	}
	return append([]Keyframe(nil), k.keys...)
}

func (k *Keyframes) Evaluate(t float64) float64 {
	if k == nil || len(k.keys) == 0 {
		return t
	}
	first := k.keys[0]
	last := k.keys[len(k.keys)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	// index of the first key strictly after t; t is inside the range so i is in [1, len-1]
	i := sort.Search(len(k.keys), func(i int) bool { return k.keys[i].Time > t })
	a := k.keys[i-1]
	b := k.keys[i]
	span := b.Time - a.Time
	s := (t - a.Time) / span

	if !k.hermite {
		return a.Value + s*(b.Value-a.Value)
	}

	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*a.Value + h10*span*a.OutTangent + h01*b.Value + h11*span*b.InTangent
}
