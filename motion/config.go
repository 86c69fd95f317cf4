// Package motion computes the per-tick movement of a single controllable
// entity: smoothed direction, blended speed, dash bonus, heading, visual
// scale and the camera-relative position clamp.
//
// Each behavior keeps its own state record and advances through a pure
// step function; Controller owns the composed State for one entity.
package motion

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/curve"
)

var ErrInvalidConfig = errors.New("motion: invalid config")

// Config is the tuning for one controller. Durations are in seconds; a zero
// duration means the transition completes instantly.
type Config struct {
	BaseSpeed    float64
	SlowFraction float64

	AccelCurve    curve.Curve
	AccelDuration float64
	DecelCurve    curve.Curve
	DecelDuration float64

	SpeedTransitionDuration float64

	DashSpeed    float64
	DashDuration float64
	DashCooldown float64

	RotationEnabled  bool
	RotationDuration float64

	ScaleEnabled     bool
	MinScaleFraction float64

	// BoundsHalfExtents is the half size of the camera-centered clamp region.
	BoundsHalfExtents cp.Vector
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		BaseSpeed:               5,
		SlowFraction:            0.5,
		AccelCurve:              curve.Linear,
		AccelDuration:           0.2,
		DecelCurve:              curve.Linear,
		DecelDuration:           0.15,
		SpeedTransitionDuration: 0.25,
		DashSpeed:               10,
		DashDuration:            0.4,
		DashCooldown:            1,
		RotationEnabled:         true,
		RotationDuration:        0.1,
		ScaleEnabled:            true,
		MinScaleFraction:        0.7,
		BoundsHalfExtents:       cp.Vector{X: 8.5, Y: 4.5},
	}
}

// Validate reports every problem with the config at once. Negative
// durations are rejected; zero durations are accepted as instant.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.BaseSpeed >= 0, "base speed %v is negative", c.BaseSpeed)
	check(c.SlowFraction >= 0 && c.SlowFraction <= 1, "slow fraction %v outside [0,1]", c.SlowFraction)
	check(c.AccelDuration >= 0, "accel duration %v is negative", c.AccelDuration)
	check(c.DecelDuration >= 0, "decel duration %v is negative", c.DecelDuration)
	check(c.SpeedTransitionDuration >= 0, "speed transition duration %v is negative", c.SpeedTransitionDuration)
	check(c.DashSpeed >= 0, "dash speed %v is negative", c.DashSpeed)
	check(c.DashDuration >= 0, "dash duration %v is negative", c.DashDuration)
	check(c.DashCooldown >= 0, "dash cooldown %v is negative", c.DashCooldown)
	check(c.RotationDuration >= 0, "rotation duration %v is negative", c.RotationDuration)
	check(c.MinScaleFraction >= 0, "minimum scale fraction %v is negative", c.MinScaleFraction)
	check(c.BoundsHalfExtents.X >= 0 && c.BoundsHalfExtents.Y >= 0, "bounds half extents %v are negative", c.BoundsHalfExtents)

	return errors.Join(errs...)
}

// MaxSpeed is the fastest the entity can travel: base speed plus a fresh dash.
func (c Config) MaxSpeed() float64 {
	return c.BaseSpeed + c.DashSpeed
}

func (c Config) withDefaults() Config {
	c.AccelCurve = curve.OrLinear(c.AccelCurve)
	c.DecelCurve = curve.OrLinear(c.DecelCurve)
	return c
}
