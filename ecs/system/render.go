package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dashmotion/common"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"golang.org/x/image/colornames"
)

const gridSpacing = 1.0

// RenderSystem draws appearances and particles as flat primitives. World
// units are converted with common.PixelsPerUnit around the camera center,
// flipping Y so +Y is up on screen.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Update is a no-op; RenderSystem only draws.
func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	view := r.currentView(w, screen)
	screen.Fill(colornames.Midnightblue)
	view.drawGrid(screen)
	view.drawBounds(w, screen)

	type drawable struct {
		e     ecs.Entity
		layer int
		z     float64
	}
	var items []drawable
	ecs.ForEach2(w,
		component.AppearanceComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, a *component.Appearance, t *component.Transform) {
			items = append(items, drawable{e: e, layer: a.Layer, z: t.Z})
		})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].z < items[j].z
	})

	ecs.ForEach2(w,
		component.ParticleComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, p *component.Particle, t *component.Transform) {
			fade := 1.0
			if p.MaxLife > 0 {
				fade = common.Clamp01(p.Life / p.MaxLife)
			}
			x, y := view.toScreen(t.X, t.Y)
			radius := float32(p.Radius * view.scale * (0.5 + 0.5*fade))
			vector.DrawFilledCircle(screen, x, y, radius, withAlpha(p.Color, fade), true)
		})

	for _, item := range items {
		a, _ := ecs.Get(w, item.e, component.AppearanceComponent.Kind())
		t, _ := ecs.Get(w, item.e, component.TransformComponent.Kind())
		view.drawAppearance(screen, a, t)
	}
}

type viewport struct {
	camX, camY float64
	scale      float64
	halfW      float64
	halfH      float64
}

func (r *RenderSystem) currentView(w *ecs.World, screen *ebiten.Image) viewport {
	v := viewport{scale: common.PixelsPerUnit}
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.camX = camTransform.X
		v.camY = camTransform.Y
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		v.scale *= cam.Zoom
	}
	b := screen.Bounds()
	v.halfW = float64(b.Dx()) / 2
	v.halfH = float64(b.Dy()) / 2
	return v
}

func (v viewport) toScreen(x, y float64) (float32, float32) {
	return float32((x-v.camX)*v.scale + v.halfW), float32(v.halfH - (y-v.camY)*v.scale)
}

func (v viewport) drawGrid(screen *ebiten.Image) {
	lineColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x14}
	left := v.camX - v.halfW/v.scale
	right := v.camX + v.halfW/v.scale
	bottom := v.camY - v.halfH/v.scale
	top := v.camY + v.halfH/v.scale

	for x := math.Floor(left/gridSpacing) * gridSpacing; x <= right; x += gridSpacing {
		x0, y0 := v.toScreen(x, top)
		x1, y1 := v.toScreen(x, bottom)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, lineColor, false)
	}
	for y := math.Floor(bottom/gridSpacing) * gridSpacing; y <= top; y += gridSpacing {
		x0, y0 := v.toScreen(left, y)
		x1, y1 := v.toScreen(right, y)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, lineColor, false)
	}
}

// drawBounds outlines the camera-relative clamp area of every motion
// controller.
func (v viewport) drawBounds(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if m.Controller == nil {
			return
		}
		half := m.Controller.Config().BoundsHalfExtents
		if half.X <= 0 && half.Y <= 0 {
			return
		}
		x, y := v.toScreen(v.camX-half.X, v.camY+half.Y)
		vector.StrokeRect(screen, x, y, float32(2*half.X*v.scale), float32(2*half.Y*v.scale), 1, colornames.Slategray, false)
	})
}

func (v viewport) drawAppearance(screen *ebiten.Image, a *component.Appearance, t *component.Transform) {
	if a == nil || t == nil {
		return
	}

	scale := math.Max(math.Abs(t.ScaleX), math.Abs(t.ScaleY))
	if scale == 0 {
		scale = 1
	}
	radius := a.Radius * scale * v.scale
	x, y := v.toScreen(t.X, t.Y)
	vector.DrawFilledCircle(screen, x, y, float32(radius), withAlpha(a.Color, 1), true)

	if a.Shape != component.ShapeArrow {
		return
	}

	// Screen Y points down, so the heading's Y component flips.
	tipX := x + float32(math.Cos(t.Rotation)*radius*1.6)
	tipY := y - float32(math.Sin(t.Rotation)*radius*1.6)
	vector.StrokeLine(screen, x, y, tipX, tipY, 3, colornames.White, true)
}

// withAlpha treats c as straight (non-premultiplied) alpha and scales it.
func withAlpha(c color.RGBA, fade float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * common.Clamp01(fade))}
}
