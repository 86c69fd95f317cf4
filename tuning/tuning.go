// Package tuning persists motion tuning made at runtime so it survives
// restarts. Overrides are stored as YAML through gdata and applied over the
// prefab config at spawn.
package tuning

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/dashmotion/motion"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "dashmotion"

	overridesObject   = "tuning"
	overridesProperty = "motion.yaml"
)

var ErrNoStore = errors.New("tuning: no store")

// Overrides holds the scalar motion settings that differ from the prefab.
// Nil fields leave the prefab value alone. Curves are authored in prefabs
// only.
type Overrides struct {
	BaseSpeed               *float64 `yaml:"base_speed,omitempty"`
	SlowFraction            *float64 `yaml:"slow_fraction,omitempty"`
	AccelDuration           *float64 `yaml:"accel_duration,omitempty"`
	DecelDuration           *float64 `yaml:"decel_duration,omitempty"`
	SpeedTransitionDuration *float64 `yaml:"speed_transition_duration,omitempty"`
	DashSpeed               *float64 `yaml:"dash_speed,omitempty"`
	DashDuration            *float64 `yaml:"dash_duration,omitempty"`
	DashCooldown            *float64 `yaml:"dash_cooldown,omitempty"`
	RotationEnabled         *bool    `yaml:"rotation_enabled,omitempty"`
	RotationDuration        *float64 `yaml:"rotation_duration,omitempty"`
	ScaleEnabled            *bool    `yaml:"scale_enabled,omitempty"`
	MinScaleFraction        *float64 `yaml:"min_scale_fraction,omitempty"`
	BoundsHalfX             *float64 `yaml:"bounds_half_x,omitempty"`
	BoundsHalfY             *float64 `yaml:"bounds_half_y,omitempty"`
}

// FromConfig captures every scalar setting of cfg.
func FromConfig(cfg motion.Config) Overrides {
	return Overrides{
		BaseSpeed:               &cfg.BaseSpeed,
		SlowFraction:            &cfg.SlowFraction,
		AccelDuration:           &cfg.AccelDuration,
		DecelDuration:           &cfg.DecelDuration,
		SpeedTransitionDuration: &cfg.SpeedTransitionDuration,
		DashSpeed:               &cfg.DashSpeed,
		DashDuration:            &cfg.DashDuration,
		DashCooldown:            &cfg.DashCooldown,
		RotationEnabled:         &cfg.RotationEnabled,
		RotationDuration:        &cfg.RotationDuration,
		ScaleEnabled:            &cfg.ScaleEnabled,
		MinScaleFraction:        &cfg.MinScaleFraction,
		BoundsHalfX:             &cfg.BoundsHalfExtents.X,
		BoundsHalfY:             &cfg.BoundsHalfExtents.Y,
	}
}

func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// Apply returns cfg with the overrides set, validated.
func (o Overrides) Apply(cfg motion.Config) (motion.Config, error) {
	setFloat(&cfg.BaseSpeed, o.BaseSpeed)
	setFloat(&cfg.SlowFraction, o.SlowFraction)
	setFloat(&cfg.AccelDuration, o.AccelDuration)
	setFloat(&cfg.DecelDuration, o.DecelDuration)
	setFloat(&cfg.SpeedTransitionDuration, o.SpeedTransitionDuration)
	setFloat(&cfg.DashSpeed, o.DashSpeed)
	setFloat(&cfg.DashDuration, o.DashDuration)
	setFloat(&cfg.DashCooldown, o.DashCooldown)
	setFloat(&cfg.RotationDuration, o.RotationDuration)
	setFloat(&cfg.MinScaleFraction, o.MinScaleFraction)
	setFloat(&cfg.BoundsHalfExtents.X, o.BoundsHalfX)
	setFloat(&cfg.BoundsHalfExtents.Y, o.BoundsHalfY)
	if o.RotationEnabled != nil {
		cfg.RotationEnabled = *o.RotationEnabled
	}
	if o.ScaleEnabled != nil {
		cfg.ScaleEnabled = *o.ScaleEnabled
	}

	if err := cfg.Validate(); err != nil {
		return motion.Config{}, fmt.Errorf("tuning: apply: %w", err)
	}
	return cfg, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// MarshalConfig renders the scalar settings of cfg as YAML.
func MarshalConfig(cfg motion.Config) ([]byte, error) {
	data, err := yaml.Marshal(FromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("tuning: marshal: %w", err)
	}
	return data, nil
}

// Store reads and writes overrides. A Store without a gdata manager keeps
// nothing and loads empty overrides.
type Store struct {
	manager *gdata.Manager
}

// Open creates a store in the per-user data directory of appName.
func Open(appName string) (*Store, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("tuning: open %s: %w", appName, err)
	}
	return &Store{manager: manager}, nil
}

func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

func (s *Store) Load() (Overrides, error) {
	if s == nil || s.manager == nil {
		return Overrides{}, nil
	}
	if !s.manager.ObjectPropExists(overridesObject, overridesProperty) {
		return Overrides{}, nil
	}

	data, err := s.manager.LoadObjectProp(overridesObject, overridesProperty)
	if err != nil {
		return Overrides{}, fmt.Errorf("tuning: load: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("tuning: decode: %w", err)
	}
	return o, nil
}

func (s *Store) Save(o Overrides) error {
	if s == nil || s.manager == nil {
		return ErrNoStore
	}

	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("tuning: encode: %w", err)
	}
	if err := s.manager.SaveObjectProp(overridesObject, overridesProperty, data); err != nil {
		return fmt.Errorf("tuning: save: %w", err)
	}
	log.Printf("tuning: saved overrides")
	return nil
}

// Clear forgets all saved overrides.
func (s *Store) Clear() error {
	return s.Save(Overrides{})
}
