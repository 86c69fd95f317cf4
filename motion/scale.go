package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/common"
)

// ScaleFor derives the visual scale from how fast the entity is going
// relative to its fastest possible speed. Faster means smaller, down to
// MinScaleFraction of the spawn scale.
func ScaleFor(cfg Config, defaultScale cp.Vector, speed float64, dir cp.Vector) cp.Vector {
	if !cfg.ScaleEnabled {
		return defaultScale
	}
	maxSpeed := cfg.MaxSpeed()
	if maxSpeed <= 0 {
		return defaultScale
	}
	ratio := common.Clamp01(speed * dir.Length() / maxSpeed)
	return common.LerpVector(defaultScale, defaultScale.Mult(cfg.MinScaleFraction), ratio)
}
