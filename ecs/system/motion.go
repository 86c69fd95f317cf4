package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"github.com/milk9111/dashmotion/motion"
)

// MotionSystem runs each entity's motion controller once per tick and
// writes the result to its transform.
type MotionSystem struct {
	// DT overrides the tick length; zero uses 1/TPS.
	DT float64
}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := s.DT
	if dt <= 0 {
		dt = tickDT()
	}
	camera := cameraCenter(w)

	ecs.ForEach3(w,
		component.MotionComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, m *component.Motion, input *component.Input, t *component.Transform) {
			if m.Controller == nil {
				return
			}

			out := m.Controller.Update(motion.Input{
				Direction: cp.Vector{X: input.MoveX, Y: input.MoveY},
				Slow:      input.Slow,
				Dash:      input.DashPressed,
				Position:  cp.Vector{X: t.X, Y: t.Y},
				Camera:    camera,
				DT:        dt,
			})

			t.X = out.Position.X
			t.Y = out.Position.Y
			t.Rotation = out.Heading
			t.ScaleX = out.Scale.X
			t.ScaleY = out.Scale.Y

			if out.DashFired {
				w.Events().Push(ecs.Event{
					Type: ecs.EventDashBurst,
					Data: ecs.DashBurst{Entity: e, X: t.X, Y: t.Y},
				})
				w.Events().Push(ecs.Event{
					Type: ecs.EventDashTrail,
					Data: ecs.DashTrail{Entity: e},
				})
			}
		})
}

func tickDT() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// cameraCenter returns the first camera's position, or the origin when the
// world has no camera.
func cameraCenter(w *ecs.World) cp.Vector {
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	t, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return cp.Vector{X: t.X, Y: t.Y}
}
