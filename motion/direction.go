package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/common"
	"github.com/milk9111/dashmotion/curve"
)

// DirectionPhase is the derived state of the direction smoother.
type DirectionPhase int

const (
	DirectionIdle DirectionPhase = iota
	DirectionAccelerating
	DirectionDecelerating
)

func (p DirectionPhase) String() string {
	switch p {
	case DirectionAccelerating:
		return "accelerating"
	case DirectionDecelerating:
		return "decelerating"
	default:
		return "idle"
	}
}

// DirectionState is the smoothed travel direction of the entity.
type DirectionState struct {
	// Current is the smoothed direction, magnitude in [0,1].
	Current cp.Vector
	// Last is the smoothed direction captured when input last returned to zero.
	Last cp.Vector
	// Input is the raw direction read this tick.
	Input cp.Vector
	// CurveTime is the time spent in the active accel or decel segment.
	CurveTime float64
	// Moving is set on the zero to non-zero input edge and cleared when input
	// returns to zero.
	Moving bool

	inputWasNonZero bool
}

// Phase derives the smoother's state from its fields.
func (s DirectionState) Phase() DirectionPhase {
	switch {
	case s.Moving:
		return DirectionAccelerating
	case s.Current != (cp.Vector{}):
		return DirectionDecelerating
	default:
		return DirectionIdle
	}
}

// StepDirection advances the direction smoother by dt seconds with the raw
// input direction for this tick.
func StepDirection(s DirectionState, cfg Config, input cp.Vector, dt float64) DirectionState {
	s.Input = input
	nonZero := !common.IsZero(input)

	if nonZero && !s.inputWasNonZero {
		s.CurveTime = 0
		s.Moving = true
	}
	if !nonZero && s.Moving {
		s.CurveTime = 0
		s.Last = s.Current
		s.Moving = false
	}
	s.inputWasNonZero = nonZero

	// transitions above still apply on a zero tick, the blend does not
	if dt <= 0 {
		return s
	}

	c, duration := curve.OrLinear(cfg.DecelCurve), cfg.DecelDuration
	if s.Moving {
		c, duration = curve.OrLinear(cfg.AccelCurve), cfg.AccelDuration
	}

	var value float64
	if s.CurveTime >= duration {
		value = c.Evaluate(1)
	} else {
		s.CurveTime += dt
		value = c.Evaluate(common.Ratio(s.CurveTime, duration))
	}

	s.Current = common.LerpVector(s.Current, common.Normalize(input), value)
	return s
}
