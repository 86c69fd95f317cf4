package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"github.com/milk9111/dashmotion/motion"
	"github.com/milk9111/dashmotion/prefabs"
)

// ConfigHook adjusts a prefab motion config before it reaches a controller,
// e.g. to apply saved tuning. A nil hook leaves the config unchanged.
type ConfigHook func(motion.Config) (motion.Config, error)

// MotionConfig builds the motion config of a player-shaped prefab file.
func MotionConfig(prefab string, hook ConfigHook) (motion.Config, error) {
	cfg, err := prefabs.LoadMotionConfig(prefab)
	if err != nil {
		return motion.Config{}, err
	}
	return applyHook(cfg, hook)
}

func applyHook(cfg motion.Config, hook ConfigHook) (motion.Config, error) {
	if hook == nil {
		return cfg, nil
	}
	cfg, err := hook(cfg)
	if err != nil {
		return motion.Config{}, fmt.Errorf("player: config hook: %w", err)
	}
	return cfg, nil
}

func NewPlayer(w *ecs.World, hook ConfigHook) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec, prefabs.PlayerFile, hook)
}

// NewPlayerFromSpec spawns a controllable entity. The transform scale at
// spawn becomes the controller's default scale.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec, prefab string, hook ConfigHook) (ecs.Entity, error) {
	cfg, err := spec.Motion.Config()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	cfg, err = applyHook(cfg, hook)
	if err != nil {
		return 0, err
	}

	transform := &component.Transform{
		X:        spec.Transform.X,
		Y:        spec.Transform.Y,
		Z:        spec.Transform.Z,
		ScaleX:   spec.Transform.ScaleX,
		ScaleY:   spec.Transform.ScaleY,
		Rotation: spec.Transform.Rotation,
	}
	if transform.ScaleX == 0 && transform.ScaleY == 0 {
		transform.ScaleX, transform.ScaleY = 1, 1
	}

	controller, err := motion.NewController(cfg, cp.Vector{X: transform.ScaleX, Y: transform.ScaleY})
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), transform); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.MotionComponent.Kind(), &component.Motion{
		Controller: controller,
		Prefab:     prefab,
	}); err != nil {
		return 0, fmt.Errorf("player: add motion: %w", err)
	}

	shape := component.Shape(spec.Appearance.Shape)
	if shape == "" {
		shape = component.ShapeArrow
	}
	if err := ecs.Add(w, player, component.AppearanceComponent.Kind(), &component.Appearance{
		Shape:  shape,
		Radius: spec.Appearance.Radius,
		Color:  spec.Appearance.Color.RGBA,
		Layer:  spec.Appearance.Layer,
	}); err != nil {
		return 0, fmt.Errorf("player: add appearance: %w", err)
	}

	burst := spec.Effects.Burst
	if err := ecs.Add(w, player, component.DashBurstComponent.Kind(), &component.DashBurst{
		Count:  burst.Count,
		Speed:  burst.Speed,
		Life:   burst.Life,
		Radius: burst.Radius,
		Color:  burst.Color.RGBA,
	}); err != nil {
		return 0, fmt.Errorf("player: add dash burst: %w", err)
	}

	trail := spec.Effects.Trail
	if err := ecs.Add(w, player, component.DashTrailComponent.Kind(), &component.DashTrail{
		Interval: trail.Interval,
		Life:     trail.Life,
		Radius:   trail.Radius,
		Color:    trail.Color.RGBA,
	}); err != nil {
		return 0, fmt.Errorf("player: add dash trail: %w", err)
	}

	return player, nil
}
