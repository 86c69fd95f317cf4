package system

import (
	"github.com/milk9111/dashmotion/common"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
)

type CameraSystem struct {
	// DT overrides the tick length; zero uses 1/TPS.
	DT float64

	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update moves the camera toward its target, closing Smoothness of the gap
// per second.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !cs.camEntity.Valid() || !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !cs.targetEntity.Valid() || !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
		if !cs.targetEntity.Valid() {
			return
		}
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if cam.Smoothness <= 0 {
		camTransform.X = target.X
		camTransform.Y = target.Y
		return
	}

	dt := cs.DT
	if dt <= 0 {
		dt = tickDT()
	}
	alpha := common.Clamp01(cam.Smoothness * dt)
	camTransform.X = common.Lerp(camTransform.X, target.X, alpha)
	camTransform.Y = common.Lerp(camTransform.Y, target.Y, alpha)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
