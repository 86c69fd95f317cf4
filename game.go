package main

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/dashmotion/common"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"github.com/milk9111/dashmotion/ecs/entity"
	"github.com/milk9111/dashmotion/ecs/system"
	"github.com/milk9111/dashmotion/motion"
	"github.com/milk9111/dashmotion/prefabs"
	"github.com/milk9111/dashmotion/tuning"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"golang.design/x/clipboard"
)

type Options struct {
	Debug bool
	Watch bool
	Fresh bool
}

type Game struct {
	frames int
	debug  bool
	paused bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	player    ecs.Entity
	spawn     component.Transform

	store     *tuning.Store
	overrides tuning.Overrides
	watcher   *prefabs.Watcher
	clipboard bool

	pauseUI *ebitenui.UI
	panel   *pausePanel
	hudFace text.Face
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		debug:   opts.Debug,
		world:   ecs.NewWorld(),
		hudFace: text.NewGoXFace(basicfont.Face7x13),
	}

	store, err := tuning.Open(tuning.AppName)
	if err != nil {
		log.Printf("tuning: persistence disabled: %v", err)
	}
	g.store = store
	if !opts.Fresh {
		overrides, err := g.store.Load()
		if err != nil {
			log.Printf("tuning: ignoring saved overrides: %v", err)
		}
		g.overrides = overrides
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	if _, err := entity.NewCamera(g.world); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	player, err := entity.NewPlayer(g.world, g.applyOverrides)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.player = player
	if t, ok := ecs.Get(g.world, player, component.TransformComponent.Kind()); ok {
		g.spawn = *t
	}

	var reload ecs.System
	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
			reload = system.NewMotionReloadSystem(watcher, func(prefab string) (motion.Config, error) {
				return entity.MotionConfig(prefab, g.applyOverrides)
			})
			log.Printf("prefabs: watching for changes")
		}
	}

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewMotionSystem(),
		system.NewCameraSystem(),
		system.NewEffectsSystem(),
		system.NewParticleSystem(),
		system.NewTTLSystem(),
		reload,
		system.NewRenderSystem(),
	)

	g.pauseUI, g.panel = NewPauseUI(g)
	return g, nil
}

func (g *Game) applyOverrides(cfg motion.Config) (motion.Config, error) {
	if g.overrides.IsZero() {
		return cfg, nil
	}
	return g.overrides.Apply(cfg)
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

func (g *Game) controller() *motion.Controller {
	m, ok := ecs.Get(g.world, g.player, component.MotionComponent.Kind())
	if !ok {
		return nil
	}
	return m.Controller
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || g.startJustPressed() {
		g.paused = !g.paused
		if g.paused {
			g.panel.refresh()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++
	g.scheduler.Update(g.world)
	if g.watcher != nil {
		for _, err := range g.watcher.DrainErrors() {
			log.Printf("prefabs: watcher: %v", err)
		}
	}
	return nil
}

func (g *Game) startJustPressed() bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)

	if g.debug {
		g.drawHUD(screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{fmt.Sprintf("frames: %d    fps: %.2f    tps: %.2f", g.frames, ebiten.ActualFPS(), ebiten.ActualTPS())}

	if c := g.controller(); c != nil {
		cfg := c.Config()
		state := c.State()
		last := c.Last()
		t, _ := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
		if t != nil {
			lines = append(lines, fmt.Sprintf("pos: (%.2f, %.2f)    scale: (%.2f, %.2f)", t.X, t.Y, t.ScaleX, t.ScaleY))
		}
		lines = append(lines,
			fmt.Sprintf("speed: %.2f (base %.2f + dash %.2f)", last.Speed, state.Speed.Current, state.Dash.Bonus),
			fmt.Sprintf("direction: %s (%.2f, %.2f)    heading: %.1f deg", state.Direction.Phase(), state.Direction.Current.X, state.Direction.Current.Y, common.Rad2Deg(state.Rotation.Heading)),
			fmt.Sprintf("dash: %s    cooldown: %.2f / %.2f", state.Dash.Phase(cfg), math.Min(state.Dash.SinceLast, cfg.DashCooldown), cfg.DashCooldown),
		)
	}
	if !g.overrides.IsZero() {
		lines = append(lines, "tuning: saved overrides active")
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(colornames.Lightgreen)
	op.LineSpacing = 16
	text.Draw(screen, strings.Join(lines, "\n"), g.hudFace, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
