package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/motion"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTimeline = errors.New("simulate: invalid timeline")

// Timeline is a scripted input sequence for one controller.
type Timeline struct {
	// Prefab names the player-shaped prefab supplying the motion config.
	Prefab string  `yaml:"prefab"`
	DT     float64 `yaml:"dt"`
	Start  Vec     `yaml:"start"`
	Camera Vec     `yaml:"camera"`

	// Scale is the spawn scale; zero means 1x1.
	Scale    Vec       `yaml:"scale"`
	Segments []Segment `yaml:"segments"`
}

// Segment holds one input for a number of ticks. Dash is pressed on the
// segment's first tick only.
type Segment struct {
	Ticks     int  `yaml:"ticks"`
	Direction Vec  `yaml:"direction"`
	Slow      bool `yaml:"slow"`
	Dash      bool `yaml:"dash"`
}

// Vec is a YAML-friendly [x, y] pair.
type Vec struct {
	X, Y float64
}

func (v *Vec) UnmarshalYAML(value *yaml.Node) error {
	var xy []float64
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("vector needs 2 components, got %d", len(xy))
	}
	v.X, v.Y = xy[0], xy[1]
	return nil
}

func (v Vec) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float64{v.X, v.Y} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprintf("%.4f", c)})
	}
	return node, nil
}

func (v Vec) vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func LoadTimeline(r io.Reader) (*Timeline, error) {
	var tl Timeline
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tl); err != nil {
		return nil, fmt.Errorf("simulate: decode timeline: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &tl, nil
}

func (tl *Timeline) Validate() error {
	var errs []error
	if tl.DT <= 0 || math.IsInf(tl.DT, 0) || math.IsNaN(tl.DT) {
		errs = append(errs, fmt.Errorf("%w: dt %v must be positive", ErrInvalidTimeline, tl.DT))
	}
	if len(tl.Segments) == 0 {
		errs = append(errs, fmt.Errorf("%w: no segments", ErrInvalidTimeline))
	}
	for i, seg := range tl.Segments {
		if seg.Ticks <= 0 {
			errs = append(errs, fmt.Errorf("%w: segment %d has %d ticks", ErrInvalidTimeline, i, seg.Ticks))
		}
	}
	return errors.Join(errs...)
}

// Tick is one row of simulation output.
type Tick struct {
	Tick      int     `yaml:"tick"`
	Time      float64 `yaml:"time"`
	Position  Vec     `yaml:"position"`
	Heading   float64 `yaml:"heading_deg"`
	Scale     Vec     `yaml:"scale"`
	Speed     float64 `yaml:"speed"`
	Direction string  `yaml:"direction"`
	Dash      string  `yaml:"dash"`
	DashFired bool    `yaml:"dash_fired,omitempty"`
}

// Run drives a fresh controller through the timeline and calls emit after
// every tick.
func Run(tl *Timeline, cfg motion.Config, emit func(Tick) error) error {
	scale := tl.Scale.vector()
	if scale == (cp.Vector{}) {
		scale = cp.Vector{X: 1, Y: 1}
	}
	controller, err := motion.NewController(cfg, scale)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	pos := tl.Start.vector()
	tick := 0
	for _, seg := range tl.Segments {
		for i := range seg.Ticks {
			out := controller.Update(motion.Input{
				Direction: seg.Direction.vector(),
				Slow:      seg.Slow,
				Dash:      seg.Dash && i == 0,
				Position:  pos,
				Camera:    tl.Camera.vector(),
				DT:        tl.DT,
			})
			pos = out.Position
			tick++

			state := controller.State()
			row := Tick{
				Tick:      tick,
				Time:      round(float64(tick) * tl.DT),
				Position:  Vec{X: out.Position.X, Y: out.Position.Y},
				Heading:   round(out.Heading * 180 / math.Pi),
				Scale:     Vec{X: out.Scale.X, Y: out.Scale.Y},
				Speed:     round(out.Speed),
				Direction: state.Direction.Phase().String(),
				Dash:      state.Dash.Phase(controller.Config()).String(),
				DashFired: out.DashFired,
			}
			if err := emit(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
