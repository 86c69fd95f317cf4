package system

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"github.com/milk9111/dashmotion/motion"
)

const testDT = 0.1

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func newCamera(t *testing.T, w *ecs.World, x, y, smoothness float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", Smoothness: smoothness, Zoom: 1})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	return e
}

func newMover(t *testing.T, w *ecs.World, cfg motion.Config) ecs.Entity {
	t.Helper()
	controller, err := motion.NewController(cfg, cp.Vector{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.MotionComponent.Kind(), &component.Motion{Controller: controller, Prefab: "player.yaml"})
	return e
}

func TestMotionSystemMovesAndRotates(t *testing.T) {
	w := ecs.NewWorld()
	newCamera(t, w, 0, 0, 0)
	player := newMover(t, w, motion.DefaultConfig())

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.MoveY = 1

	sys := &MotionSystem{DT: testDT}
	for range 5 {
		sys.Update(w)
	}

	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if transform.Y <= 0 {
		t.Fatalf("expected upward movement, got y=%v", transform.Y)
	}
	if !approx(transform.X, 0) {
		t.Fatalf("expected no horizontal drift, got x=%v", transform.X)
	}
	if !approx(transform.Rotation, math.Pi/2) {
		t.Fatalf("expected heading pi/2, got %v", transform.Rotation)
	}
	if transform.ScaleX > 1 || transform.ScaleY > 1 {
		t.Fatalf("scale should shrink while moving, got %v,%v", transform.ScaleX, transform.ScaleY)
	}
}

func TestMotionSystemClampsToCamera(t *testing.T) {
	w := ecs.NewWorld()
	newCamera(t, w, 2, 1, 0)
	player := newMover(t, w, motion.DefaultConfig())

	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	transform.X = 100
	transform.Y = -100
	transform.Z = 3

	(&MotionSystem{DT: testDT}).Update(w)

	if !approx(transform.X, 10.5) || !approx(transform.Y, -3.5) {
		t.Fatalf("expected clamp to (10.5,-3.5), got (%v,%v)", transform.X, transform.Y)
	}
	if transform.Z != 3 {
		t.Fatalf("expected z preserved, got %v", transform.Z)
	}
}

func TestMotionSystemPushesDashEvents(t *testing.T) {
	w := ecs.NewWorld()
	newCamera(t, w, 0, 0, 0)
	player := newMover(t, w, motion.DefaultConfig())

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.MoveX = 1

	sys := &MotionSystem{DT: testDT}
	sys.Update(w)
	if w.Events().Len() != 0 {
		t.Fatalf("expected no events without dash input")
	}

	input.DashPressed = true
	sys.Update(w)

	bursts := w.Events().DrainType(ecs.EventDashBurst)
	trails := w.Events().DrainType(ecs.EventDashTrail)
	if len(bursts) != 1 || len(trails) != 1 {
		t.Fatalf("expected one burst and one trail, got %d and %d", len(bursts), len(trails))
	}
	burst := bursts[0].Data.(ecs.DashBurst)
	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if burst.Entity != player || burst.X != transform.X || burst.Y != transform.Y {
		t.Fatalf("unexpected burst payload %+v", burst)
	}

	// cooldown blocks an immediate second dash
	sys.Update(w)
	if w.Events().Len() != 0 {
		t.Fatalf("expected cooldown to block dash")
	}
}

func TestCameraSystemFollowsPlayer(t *testing.T) {
	tests := []struct {
		name       string
		smoothness float64
		wantX      float64
	}{
		{name: "snap", smoothness: 0, wantX: 4},
		{name: "smoothed", smoothness: 5, wantX: 2},
		{name: "saturated", smoothness: 100, wantX: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cam := newCamera(t, w, 0, 0, tt.smoothness)
			player := newMover(t, w, motion.DefaultConfig())
			transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
			transform.X = 4

			(&CameraSystem{DT: testDT}).Update(w)

			camTransform, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
			if !approx(camTransform.X, tt.wantX) {
				t.Fatalf("expected camera x=%v, got %v", tt.wantX, camTransform.X)
			}
		})
	}
}

func TestEffectsSystemSpawnsBurst(t *testing.T) {
	w := ecs.NewWorld()
	player := newMover(t, w, motion.DefaultConfig())
	mustAdd(t, w, player, component.DashBurstComponent.Kind(), &component.DashBurst{
		Count: 8, Speed: 2, Life: 0.5, Radius: 0.1, Color: color.RGBA{R: 255, A: 255},
	})

	w.Events().Push(ecs.Event{Type: ecs.EventDashBurst, Data: ecs.DashBurst{Entity: player, X: 1, Y: 2}})
	(&EffectsSystem{DT: testDT}).Update(w)

	if got := ecs.Count(w, component.ParticleComponent.Kind()); got != 8 {
		t.Fatalf("expected 8 particles, got %d", got)
	}
	ecs.ForEach3(w,
		component.ParticleComponent.Kind(),
		component.TransformComponent.Kind(),
		component.TTLComponent.Kind(),
		func(e ecs.Entity, p *component.Particle, tr *component.Transform, ttl *component.TTL) {
			if tr.X != 1 || tr.Y != 2 {
				t.Fatalf("particle spawned at (%v,%v)", tr.X, tr.Y)
			}
			if !approx(math.Hypot(p.VX, p.VY), 2) {
				t.Fatalf("expected burst speed 2, got %v", math.Hypot(p.VX, p.VY))
			}
			if ttl.Frames != 5 {
				t.Fatalf("expected 5 frames of life, got %d", ttl.Frames)
			}
		})
	if w.Events().Len() != 0 {
		t.Fatalf("expected dash events drained")
	}
}

func TestEffectsSystemTrailFollowsDash(t *testing.T) {
	w := ecs.NewWorld()
	newCamera(t, w, 0, 0, 0)
	player := newMover(t, w, motion.DefaultConfig())
	mustAdd(t, w, player, component.DashTrailComponent.Kind(), &component.DashTrail{Interval: testDT, Life: 0.2, Radius: 0.3})

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.MoveX = 1

	move := &MotionSystem{DT: testDT}
	effects := &EffectsSystem{DT: testDT}
	move.Update(w)
	input.DashPressed = true
	move.Update(w)
	w.Events().DrainType(ecs.EventDashBurst)
	effects.Update(w)
	input.DashPressed = false

	trail, _ := ecs.Get(w, player, component.DashTrailComponent.Kind())
	if !trail.Active {
		t.Fatalf("expected trail active after dash")
	}
	if got := ecs.Count(w, component.ParticleComponent.Kind()); got != 1 {
		t.Fatalf("expected one trail particle, got %d", got)
	}

	// stopping ends the dash bonus and with it the trail
	input.MoveX = 0
	move.Update(w)
	move.Update(w)
	effects.Update(w)
	if trail.Active {
		t.Fatalf("expected trail inactive once the bonus ends")
	}
}

func TestParticleSystemDriftsAndFades(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.ParticleComponent.Kind(), &component.Particle{VX: 10, Drag: 5, Life: 1, MaxLife: 1})

	(&ParticleSystem{DT: testDT}).Update(w)

	p, _ := ecs.Get(w, e, component.ParticleComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !approx(tr.X, 1) {
		t.Fatalf("expected x=1, got %v", tr.X)
	}
	if !approx(p.VX, 5) {
		t.Fatalf("expected drag to halve velocity, got %v", p.VX)
	}
	if !approx(p.Life, 0.9) {
		t.Fatalf("expected life 0.9, got %v", p.Life)
	}
}

func TestTTLSystemDestroysExpired(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 2})

	sys := NewTTLSystem()
	sys.Update(w)
	if !ecs.IsAlive(w, e) {
		t.Fatalf("entity destroyed early")
	}
	sys.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("expected entity destroyed")
	}
}

func TestInputSystemCopiesSample(t *testing.T) {
	w := ecs.NewWorld()
	player := newMover(t, w, motion.DefaultConfig())

	sys := &InputSystem{Read: func() component.Input {
		return component.Input{MoveX: -1, Slow: true, DashPressed: true}
	}}
	sys.Update(w)

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	if input.MoveX != -1 || !input.Slow || !input.DashPressed {
		t.Fatalf("unexpected input %+v", input)
	}
}

type fakeChanges struct {
	paths []string
}

func (f *fakeChanges) Drain() []string {
	out := f.paths
	f.paths = nil
	return out
}

func TestMotionReloadSystem(t *testing.T) {
	tuned := motion.DefaultConfig()
	tuned.BaseSpeed = 9

	tests := []struct {
		name      string
		changed   []string
		buildErr  error
		wantSpeed float64
		wantEvent bool
	}{
		{name: "prefab change", changed: []string{"prefabs/player.yaml"}, wantSpeed: 9, wantEvent: true},
		{name: "script change", changed: []string{"prefabs/scripts/snappy_stop.tengo"}, wantSpeed: 9, wantEvent: true},
		{name: "other prefab", changed: []string{"prefabs/camera.yaml"}, wantSpeed: 5},
		{name: "build failure", changed: []string{"prefabs/player.yaml"}, buildErr: errors.New("bad yaml"), wantSpeed: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := newMover(t, w, motion.DefaultConfig())
			m, _ := ecs.Get(w, player, component.MotionComponent.Kind())

			var built []string
			sys := NewMotionReloadSystem(&fakeChanges{paths: tt.changed}, func(prefab string) (motion.Config, error) {
				built = append(built, prefab)
				return tuned, tt.buildErr
			})
			sys.Update(w)

			if got := m.Controller.Config().BaseSpeed; got != tt.wantSpeed {
				t.Fatalf("expected base speed %v, got %v", tt.wantSpeed, got)
			}
			if got := len(w.Events().DrainType(ecs.EventConfigReloaded)) > 0; got != tt.wantEvent {
				t.Fatalf("expected reload event %v, got %v", tt.wantEvent, got)
			}
			if tt.wantEvent && (len(built) != 1 || built[0] != "player.yaml") {
				t.Fatalf("expected one build of player.yaml, got %v", built)
			}
		})
	}
}

func TestMotionReloadKeepsConfigOnInvalid(t *testing.T) {
	w := ecs.NewWorld()
	player := newMover(t, w, motion.DefaultConfig())
	m, _ := ecs.Get(w, player, component.MotionComponent.Kind())

	bad := motion.DefaultConfig()
	bad.DashDuration = -1
	sys := NewMotionReloadSystem(&fakeChanges{paths: []string{"player.yaml"}}, func(string) (motion.Config, error) {
		return bad, nil
	})
	sys.Update(w)

	if got := m.Controller.Config().DashDuration; got != motion.DefaultConfig().DashDuration {
		t.Fatalf("expected dash duration kept, got %v", got)
	}
}
