package curve

import (
	"fmt"
	"strings"
)

// Spec is the YAML authoring format for a curve. At most one of Preset,
// Bezier, Keys or Script may be set; an empty spec is the linear curve.
//
//	accel_curve:
//	  keys:
//	    - {time: 0, value: 0}
//	    - {time: 1, value: 1}
//	  interpolation: hermite
type Spec struct {
	Preset        string     `yaml:"preset,omitempty"`
	Bezier        []float64  `yaml:"bezier,omitempty,flow"`
	Keys          []Keyframe `yaml:"keys,omitempty"`
	Interpolation string     `yaml:"interpolation,omitempty"`
	Script        string     `yaml:"script,omitempty"`
}

// ScriptLoader resolves a script name to its source.
type ScriptLoader func(name string) ([]byte, error)

func (s Spec) IsZero() bool {
	return s.Preset == "" && len(s.Bezier) == 0 && len(s.Keys) == 0 && s.Script == ""
}

// Build turns the description into an evaluable curve.
func (s Spec) Build(load ScriptLoader) (Curve, error) {
	set := 0
	for _, present := range []bool{s.Preset != "", len(s.Bezier) > 0, len(s.Keys) > 0, s.Script != ""} {
		if present {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("%w: preset, bezier, keys and script are mutually exclusive", ErrInvalidCurve)
	}

	switch {
	case s.Preset != "":
		return Preset(s.Preset)
	case len(s.Bezier) > 0:
		if len(s.Bezier) != 4 {
			return nil, fmt.Errorf("%w: bezier needs 4 control values, got %d", ErrInvalidCurve, len(s.Bezier))
		}
		return CubicBezier(s.Bezier[0], s.Bezier[1], s.Bezier[2], s.Bezier[3])
	case len(s.Keys) > 0:
		switch strings.ToLower(s.Interpolation) {
		case "", "linear":
			return NewKeyframes(s.Keys...)
		case "hermite", "smooth":
			return NewHermiteKeyframes(s.Keys...)
		default:
			return nil, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidCurve, s.Interpolation)
		}
	case s.Script != "":
		if load == nil {
			return nil, fmt.Errorf("%w: no script loader for %s", ErrInvalidCurve, s.Script)
		}
		src, err := load(s.Script)
		if err != nil {
			return nil, fmt.Errorf("curve: load script %s: %w", s.Script, err)
		}
		return NewScript(s.Script, src)
	}
	return Linear, nil
}
