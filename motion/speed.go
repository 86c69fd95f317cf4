package motion

import "github.com/milk9111/dashmotion/common"

// SpeedState is the travel speed before any dash bonus.
type SpeedState struct {
	Current    float64
	Transition float64
}

// TargetSpeed is the speed the blender is heading toward.
func TargetSpeed(cfg Config, slow bool) float64 {
	if slow {
		return cfg.BaseSpeed * cfg.SlowFraction
	}
	return cfg.BaseSpeed
}

// StepSpeed blends the current speed toward the target for the slow
// modifier. While the speed is off target the transition timer restarts
// every tick, so the approach eases out and lands on the target once a
// single tick spans the whole transition window.
func StepSpeed(s SpeedState, cfg Config, slow bool, dt float64) SpeedState {
	target := TargetSpeed(cfg, slow)
	if s.Current != target {
		s.Transition = 0
	}
	if dt > 0 {
		s.Transition += dt
	}
	s.Current = common.Lerp(s.Current, target, common.Ratio(s.Transition, cfg.SpeedTransitionDuration))
	return s
}
