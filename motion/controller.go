package motion

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Input is everything the controller reads for one tick.
type Input struct {
	// Direction is the raw move input; only its direction is used.
	Direction cp.Vector
	// Slow is held while the slow modifier is pressed.
	Slow bool
	// Dash is true on the tick the dash action was pressed.
	Dash bool
	// Position is the entity position before this tick.
	Position cp.Vector
	// Camera is the current camera center used for the bounds clamp.
	Camera cp.Vector
	// DT is the tick length in seconds.
	DT float64
}

// Output is what the controller writes back to the entity's transform.
type Output struct {
	Position cp.Vector
	Heading  float64
	Scale    cp.Vector
	// Speed is the blended speed including the dash bonus.
	Speed float64
	// DashFired is set on the tick a dash trigger was accepted.
	DashFired bool
}

// State is the complete mutable motion state of one entity.
type State struct {
	Direction DirectionState
	Speed     SpeedState
	Dash      DashState
	Rotation  RotationState
	// DefaultScale is the transform scale captured at spawn.
	DefaultScale cp.Vector
}

// NewState returns the spawn state for cfg.
func NewState(cfg Config, defaultScale cp.Vector) State {
	return State{
		Speed:        SpeedState{Current: cfg.BaseSpeed},
		Dash:         NewDashState(cfg),
		DefaultScale: defaultScale,
	}
}

// Step advances s by one tick. It is a pure function of its arguments; the
// order is dash, speed, direction, translate, rotation, clamp, scale.
func Step(s State, cfg Config, in Input) (State, Output) {
	cfg = cfg.withDefaults()
	dt := max(in.DT, 0)

	var fired bool
	s.Dash, fired = StepDash(s.Dash, cfg, in.Dash, s.Direction.Moving, dt)
	s.Speed = StepSpeed(s.Speed, cfg, in.Slow, dt)
	s.Direction = StepDirection(s.Direction, cfg, in.Direction, dt)

	speed := s.Speed.Current + s.Dash.Bonus
	pos := in.Position.Add(s.Direction.Current.Mult(speed * dt))

	s.Rotation = StepRotation(s.Rotation, cfg, s.Direction, dt)
	pos = ClampToCamera(pos, in.Camera, cfg.BoundsHalfExtents)

	return s, Output{
		Position:  pos,
		Heading:   s.Rotation.Heading,
		Scale:     ScaleFor(cfg, s.DefaultScale, speed, s.Direction.Current),
		Speed:     speed,
		DashFired: fired,
	}
}

// Controller owns the motion state of one entity.
type Controller struct {
	cfg   Config
	state State
	last  Output
}

// NewController validates cfg and returns a controller at its spawn state.
func NewController(cfg Config, defaultScale cp.Vector) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("motion: new controller: %w", err)
	}
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:   cfg,
		state: NewState(cfg, defaultScale),
		last:  Output{Scale: defaultScale, Speed: cfg.BaseSpeed},
	}, nil
}

// Update advances the controller by one tick.
func (c *Controller) Update(in Input) Output {
	if c == nil {
		return Output{Position: in.Position}
	}
	c.state, c.last = Step(c.state, c.cfg, in)
	return c.last
}

// SetConfig swaps the tuning without touching the running state.
func (c *Controller) SetConfig(cfg Config) error {
	if c == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("motion: set config: %w", err)
	}
	c.cfg = cfg.withDefaults()
	return nil
}

// Reset returns the controller to its spawn state.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.state = NewState(c.cfg, c.state.DefaultScale)
	c.last = Output{Scale: c.state.DefaultScale, Speed: c.cfg.BaseSpeed}
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) State() State {
	return c.state
}

// Last returns the output of the most recent Update.
func (c *Controller) Last() Output {
	return c.last
}
