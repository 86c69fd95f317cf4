package motion

import "github.com/milk9111/dashmotion/common"

// DashPhase is the derived state of the dash machine.
type DashPhase int

const (
	DashReady DashPhase = iota
	DashCooling
	DashActive
)

func (p DashPhase) String() string {
	switch p {
	case DashCooling:
		return "cooling"
	case DashActive:
		return "active"
	default:
		return "ready"
	}
}

// DashState tracks the dash bonus and its cooldown.
type DashState struct {
	// Bonus is the speed added on top of the blended speed this tick.
	Bonus float64
	// Elapsed is the time since the active dash started. It is pinned to the
	// dash duration while the entity is not moving.
	Elapsed float64
	// SinceLast is the time since the last accepted dash trigger.
	SinceLast float64
}

// NewDashState returns a dash machine that is ready to fire with no bonus.
func NewDashState(cfg Config) DashState {
	return DashState{
		Bonus:     0,
		Elapsed:   cfg.DashDuration,
		SinceLast: cfg.DashCooldown,
	}
}

// Phase derives the machine's state from its fields.
func (s DashState) Phase(cfg Config) DashPhase {
	switch {
	case s.Bonus > 0:
		return DashActive
	case s.SinceLast < cfg.DashCooldown:
		return DashCooling
	default:
		return DashReady
	}
}

// Ready reports whether a trigger this tick would be accepted.
func (s DashState) Ready(cfg Config, dt float64) bool {
	return s.SinceLast+max(dt, 0) >= cfg.DashCooldown
}

// StepDash advances the dash machine. moving is the direction smoother's
// moving flag from the previous tick. The returned bool reports whether a
// trigger was accepted this tick.
func StepDash(s DashState, cfg Config, requested, moving bool, dt float64) (DashState, bool) {
	dt = max(dt, 0)
	s.SinceLast += dt

	fired := false
	if requested && s.SinceLast >= cfg.DashCooldown {
		s.SinceLast = 0
		s.Elapsed = 0
		fired = true
	}

	if moving {
		s.Elapsed += dt
	} else {
		// a dash ends as soon as the entity stops moving
		s.Elapsed = cfg.DashDuration
	}

	s.Bonus = dashBonus(cfg, s.Elapsed)
	return s, fired
}

func dashBonus(cfg Config, elapsed float64) float64 {
	if cfg.DashDuration <= 0 {
		return 0
	}
	r := common.Ratio(elapsed, cfg.DashDuration)
	if r >= 1 {
		return 0
	}
	return common.Lerp(cfg.DashSpeed, 0, r)
}
