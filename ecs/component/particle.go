package component

import "image/color"

// Particle is a short-lived visual speck spawned by the effects system.
type Particle struct {
	VX, VY float64
	// Drag is the fraction of velocity lost per second.
	Drag    float64
	Radius  float64
	Color   color.RGBA
	Life    float64
	MaxLife float64
}

var ParticleComponent = NewComponent[Particle]("particle")
