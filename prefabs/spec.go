package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/curve"
	"github.com/milk9111/dashmotion/motion"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile = "player.yaml"
	CameraFile = "camera.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name       string         `yaml:"name"`
	Transform  TransformSpec  `yaml:"transform"`
	Appearance AppearanceSpec `yaml:"appearance"`
	Motion     MotionSpec     `yaml:"motion"`
	Effects    EffectsSpec    `yaml:"effects"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadMotionConfig builds the motion config of a player-shaped prefab file.
func LoadMotionConfig(filename string) (motion.Config, error) {
	spec, err := LoadSpec[PlayerSpec](filename)
	if err != nil {
		return motion.Config{}, err
	}
	return spec.Motion.Config()
}

type CameraSpec struct {
	Name       string        `yaml:"name"`
	Transform  TransformSpec `yaml:"transform"`
	Target     string        `yaml:"target"`
	Zoom       float64       `yaml:"zoom"`
	Smoothness float64       `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type AppearanceSpec struct {
	Shape  string    `yaml:"shape"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
	Layer  int       `yaml:"layer"`
}

// MotionSpec is the authored form of motion.Config.
type MotionSpec struct {
	BaseSpeed               float64      `yaml:"base_speed"`
	SlowFraction            float64      `yaml:"slow_fraction"`
	Accel                   SegmentSpec  `yaml:"accel"`
	Decel                   SegmentSpec  `yaml:"decel"`
	SpeedTransitionDuration float64      `yaml:"speed_transition_duration"`
	Dash                    DashSpec     `yaml:"dash"`
	Rotation                RotationSpec `yaml:"rotation"`
	Scale                   ScaleSpec    `yaml:"scale"`
	Bounds                  BoundsSpec   `yaml:"bounds"`
}

type SegmentSpec struct {
	Duration float64    `yaml:"duration"`
	Curve    curve.Spec `yaml:"curve,omitempty"`
}

type DashSpec struct {
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"`
	Cooldown float64 `yaml:"cooldown"`
}

type RotationSpec struct {
	Enabled  bool    `yaml:"enabled"`
	Duration float64 `yaml:"duration"`
}

type ScaleSpec struct {
	Enabled     bool    `yaml:"enabled"`
	MinFraction float64 `yaml:"min_fraction"`
}

type BoundsSpec struct {
	HalfX float64 `yaml:"half_x"`
	HalfY float64 `yaml:"half_y"`
}

// Config builds and validates the motion config, compiling curves through
// the prefab script loader.
func (s MotionSpec) Config() (motion.Config, error) {
	accel, err := s.Accel.Curve.Build(LoadScript)
	if err != nil {
		return motion.Config{}, fmt.Errorf("prefabs: accel curve: %w", err)
	}
	decel, err := s.Decel.Curve.Build(LoadScript)
	if err != nil {
		return motion.Config{}, fmt.Errorf("prefabs: decel curve: %w", err)
	}

	cfg := motion.Config{
		BaseSpeed:               s.BaseSpeed,
		SlowFraction:            s.SlowFraction,
		AccelCurve:              accel,
		AccelDuration:           s.Accel.Duration,
		DecelCurve:              decel,
		DecelDuration:           s.Decel.Duration,
		SpeedTransitionDuration: s.SpeedTransitionDuration,
		DashSpeed:               s.Dash.Speed,
		DashDuration:            s.Dash.Duration,
		DashCooldown:            s.Dash.Cooldown,
		RotationEnabled:         s.Rotation.Enabled,
		RotationDuration:        s.Rotation.Duration,
		ScaleEnabled:            s.Scale.Enabled,
		MinScaleFraction:        s.Scale.MinFraction,
		BoundsHalfExtents:       cp.Vector{X: s.Bounds.HalfX, Y: s.Bounds.HalfY},
	}
	if err := cfg.Validate(); err != nil {
		return motion.Config{}, fmt.Errorf("prefabs: motion: %w", err)
	}
	return cfg, nil
}

type EffectsSpec struct {
	Burst BurstSpec `yaml:"burst"`
	Trail TrailSpec `yaml:"trail"`
}

type BurstSpec struct {
	Count  int       `yaml:"count"`
	Speed  float64   `yaml:"speed"`
	Life   float64   `yaml:"life"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
}

type TrailSpec struct {
	Interval float64   `yaml:"interval"`
	Life     float64   `yaml:"life"`
	Radius   float64   `yaml:"radius"`
	Color    YAMLColor `yaml:"color"`
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
