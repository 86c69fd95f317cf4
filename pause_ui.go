package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/dashmotion/common"
	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"github.com/milk9111/dashmotion/ecs/entity"
	"github.com/milk9111/dashmotion/motion"
	"github.com/milk9111/dashmotion/prefabs"
	"github.com/milk9111/dashmotion/tuning"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// tunable is one adjustable config value in the pause panel.
type tunable struct {
	name  string
	step  float64
	max   float64
	field func(cfg *motion.Config) *float64
	label *widget.Text
}

type pausePanel struct {
	g        *Game
	tunables []*tunable
	status   *widget.Text
}

// NewPauseUI builds the centered pause menu: live tuning of the player's
// motion plus actions to copy, save or reset it.
func NewPauseUI(g *Game) (*ebitenui.UI, *pausePanel) {
	p := &pausePanel{g: g}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	label := func(s string) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(s, &face, white),
			widget.TextOpts.WidgetOpts(center),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(label("Paused"))

	p.tunables = []*tunable{
		{name: "base speed", step: 0.5, field: func(c *motion.Config) *float64 { return &c.BaseSpeed }},
		{name: "slow fraction", step: 0.05, max: 1, field: func(c *motion.Config) *float64 { return &c.SlowFraction }},
		{name: "accel duration", step: 0.05, field: func(c *motion.Config) *float64 { return &c.AccelDuration }},
		{name: "decel duration", step: 0.05, field: func(c *motion.Config) *float64 { return &c.DecelDuration }},
		{name: "dash speed", step: 1, field: func(c *motion.Config) *float64 { return &c.DashSpeed }},
		{name: "dash duration", step: 0.05, field: func(c *motion.Config) *float64 { return &c.DashDuration }},
		{name: "dash cooldown", step: 0.1, field: func(c *motion.Config) *float64 { return &c.DashCooldown }},
	}
	for _, t := range p.tunables {
		t.label = label("")
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
			widget.ContainerOpts.WidgetOpts(center),
		)
		row.AddChild(button("-", func() { p.nudge(t, -t.step) }))
		row.AddChild(t.label)
		row.AddChild(button("+", func() { p.nudge(t, t.step) }))
		panel.AddChild(row)
	}

	actions := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(center),
	)
	actions.AddChild(button("Resume", func() { g.paused = false }))
	actions.AddChild(button("Copy config", p.copyConfig))
	actions.AddChild(button("Save tuning", p.saveTuning))
	actions.AddChild(button("Reset tuning", p.resetTuning))
	actions.AddChild(button("Respawn", p.respawn))
	panel.AddChild(actions)

	p.status = label("")
	panel.AddChild(p.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.refresh()
	return &ebitenui.UI{Container: root}, p
}

func (p *pausePanel) refresh() {
	c := p.g.controller()
	if c == nil {
		return
	}
	cfg := c.Config()
	for _, t := range p.tunables {
		t.label.Label = fmt.Sprintf("%s: %.2f", t.name, *t.field(&cfg))
	}
}

func (p *pausePanel) setStatus(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.status.Label = msg
	log.Printf("pause: %s", msg)
}

func (p *pausePanel) nudge(t *tunable, delta float64) {
	c := p.g.controller()
	if c == nil {
		return
	}
	cfg := c.Config()
	v := t.field(&cfg)
	*v = max(0, *v+delta)
	if t.max > 0 {
		*v = min(*v, t.max)
	}
	if err := c.SetConfig(cfg); err != nil {
		p.setStatus("%v", err)
		return
	}
	p.refresh()
}

func (p *pausePanel) copyConfig() {
	c := p.g.controller()
	if c == nil {
		return
	}
	if !p.g.clipboard {
		p.setStatus("clipboard unavailable")
		return
	}
	data, err := tuning.MarshalConfig(c.Config())
	if err != nil {
		p.setStatus("%v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	p.setStatus("copied motion config")
}

func (p *pausePanel) saveTuning() {
	c := p.g.controller()
	if c == nil {
		return
	}
	overrides := tuning.FromConfig(c.Config())
	if err := p.g.store.Save(overrides); err != nil {
		p.setStatus("%v", err)
		return
	}
	p.g.overrides = overrides
	p.setStatus("saved tuning")
}

func (p *pausePanel) resetTuning() {
	c := p.g.controller()
	if c == nil {
		return
	}
	if err := p.g.store.Clear(); err != nil {
		log.Printf("tuning: clear: %v", err)
	}
	p.g.overrides = tuning.Overrides{}

	cfg, err := entity.MotionConfig(prefabs.PlayerFile, nil)
	if err != nil {
		p.setStatus("%v", err)
		return
	}
	if err := c.SetConfig(cfg); err != nil {
		p.setStatus("%v", err)
		return
	}
	p.refresh()
	p.setStatus("restored prefab tuning")
}

func (p *pausePanel) respawn() {
	c := p.g.controller()
	if c == nil {
		return
	}
	c.Reset()
	if t, ok := ecs.Get(p.g.world, p.g.player, component.TransformComponent.Kind()); ok {
		*t = p.g.spawn
	}
	p.setStatus("respawned")
}
