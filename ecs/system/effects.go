package system

import (
	"log"
	"math"

	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
)

// maxParticles caps live particles; bursts beyond it are dropped.
const maxParticles = 512

// EffectsSystem turns dash events into particles: a ring burst at the dash
// origin and a trail that follows the entity while the dash bonus lasts.
type EffectsSystem struct {
	// DT overrides the tick length; zero uses 1/TPS.
	DT float64
}

func NewEffectsSystem() *EffectsSystem {
	return &EffectsSystem{}
}

func (s *EffectsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := s.DT
	if dt <= 0 {
		dt = tickDT()
	}

	for _, evt := range w.Events().DrainType(ecs.EventDashBurst) {
		burst, ok := evt.Data.(ecs.DashBurst)
		if !ok {
			continue
		}
		spec, ok := ecs.Get(w, burst.Entity, component.DashBurstComponent.Kind())
		if !ok {
			continue
		}
		s.spawnBurst(w, burst, spec, dt)
	}

	for _, evt := range w.Events().DrainType(ecs.EventDashTrail) {
		trail, ok := evt.Data.(ecs.DashTrail)
		if !ok {
			continue
		}
		if c, ok := ecs.Get(w, trail.Entity, component.DashTrailComponent.Kind()); ok {
			c.Active = true
			c.Accum = c.Interval
		}
	}

	ecs.ForEach3(w,
		component.DashTrailComponent.Kind(),
		component.MotionComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, trail *component.DashTrail, m *component.Motion, t *component.Transform) {
			if !trail.Active || m.Controller == nil {
				return
			}
			if m.Controller.State().Dash.Bonus <= 0 {
				trail.Active = false
				trail.Accum = 0
				return
			}

			trail.Accum += dt
			if trail.Interval > 0 && trail.Accum < trail.Interval {
				return
			}
			trail.Accum = 0
			spawnParticle(w, t.X, t.Y, t.Z-1, &component.Particle{
				Radius:  trail.Radius * t.ScaleX,
				Color:   trail.Color,
				Life:    trail.Life,
				MaxLife: trail.Life,
			}, dt)
		})
}

func (s *EffectsSystem) spawnBurst(w *ecs.World, burst ecs.DashBurst, spec *component.DashBurst, dt float64) {
	if spec.Count <= 0 {
		return
	}
	live := ecs.Count(w, component.ParticleComponent.Kind())
	if live+spec.Count > maxParticles {
		log.Printf("effects: dropping burst of %d particles for entity %s (%d live)", spec.Count, burst.Entity, live)
		return
	}

	step := 2 * math.Pi / float64(spec.Count)
	for i := range spec.Count {
		angle := step * float64(i)
		spawnParticle(w, burst.X, burst.Y, 1, &component.Particle{
			VX:      math.Cos(angle) * spec.Speed,
			VY:      math.Sin(angle) * spec.Speed,
			Drag:    4,
			Radius:  spec.Radius,
			Color:   spec.Color,
			Life:    spec.Life,
			MaxLife: spec.Life,
		}, dt)
	}
}

func spawnParticle(w *ecs.World, x, y, z float64, p *component.Particle, dt float64) {
	e := ecs.CreateEntity(w)
	frames := 1
	if dt > 0 {
		frames = max(1, int(math.Ceil(p.Life/dt)))
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Z: z, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.ParticleComponent.Kind(), p)
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames})
}
