package motion

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/common"
)

// RotationState is the heading of the entity in radians, counter-clockwise
// from the +X axis.
type RotationState struct {
	Elapsed float64
	Heading float64
}

// StepRotation turns the heading from the direction held at the last stop
// toward the current smoothed direction over the rotation window.
func StepRotation(s RotationState, cfg Config, dir DirectionState, dt float64) RotationState {
	var aim cp.Vector
	if dir.Current == (cp.Vector{}) {
		s.Elapsed = 0
		aim = dir.Last
	} else {
		s.Elapsed += max(dt, 0)
		aim = common.LerpVector(dir.Last, dir.Current, common.Ratio(s.Elapsed, cfg.RotationDuration))
	}

	if !cfg.RotationEnabled {
		s.Heading = 0
		return s
	}
	if aim == (cp.Vector{}) {
		return s
	}
	s.Heading = math.Atan2(aim.Y, aim.X)
	return s
}
