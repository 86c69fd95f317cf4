package system

import (
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
)

// ParticleSystem drifts particles by their velocity, applies drag and
// counts down their life for fading. TTLSystem removes them.
type ParticleSystem struct {
	// DT overrides the tick length; zero uses 1/TPS.
	DT float64
}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := s.DT
	if dt <= 0 {
		dt = tickDT()
	}

	ecs.ForEach2(w,
		component.ParticleComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, p *component.Particle, t *component.Transform) {
			t.X += p.VX * dt
			t.Y += p.VY * dt

			damp := max(0, 1-p.Drag*dt)
			p.VX *= damp
			p.VY *= damp

			p.Life = max(0, p.Life-dt)
		})
}
