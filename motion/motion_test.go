package motion

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/curve"
)

const tolerance = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func nearVec(a, b cp.Vector) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseSpeed = 5
	cfg.DashSpeed = 10
	cfg.DashDuration = 1
	cfg.DashCooldown = 2
	cfg.AccelDuration = 0.2
	cfg.DecelDuration = 0.2
	cfg.AccelCurve = curve.Linear
	cfg.DecelCurve = curve.Linear
	cfg.BoundsHalfExtents = cp.Vector{X: 1000, Y: 1000}
	return cfg
}

var right = cp.Vector{X: 1, Y: 0}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero_durations_are_instant", func(c *Config) {
			c.AccelDuration, c.DecelDuration, c.SpeedTransitionDuration, c.DashDuration, c.RotationDuration = 0, 0, 0, 0, 0
		}, true},
		{"negative_accel", func(c *Config) { c.AccelDuration = -1 }, false},
		{"negative_dash_duration", func(c *Config) { c.DashDuration = -0.1 }, false},
		{"negative_cooldown", func(c *Config) { c.DashCooldown = -1 }, false},
		{"slow_fraction_above_one", func(c *Config) { c.SlowFraction = 1.5 }, false},
		{"nan_speed", func(c *Config) { c.BaseSpeed = math.NaN() }, false},
		{"negative_bounds", func(c *Config) { c.BoundsHalfExtents = cp.Vector{X: -1, Y: 1} }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.ok && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AccelDuration = -1
	cfg.RotationDuration = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Fatalf("expected two joined errors, got %v", err)
	}
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DecelDuration = -2
	if _, err := NewController(cfg, cp.Vector{X: 1, Y: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestAccelerationReachesTargetAfterDuration(t *testing.T) {
	cfg := testConfig()
	var s DirectionState

	s = StepDirection(s, cfg, right, 0.2)
	if !s.Moving {
		t.Fatal("expected moving after input edge")
	}
	if s.Current != right {
		t.Fatalf("expected smoothed direction %v, got %v", right, s.Current)
	}
}

func TestAccelerationIsGradual(t *testing.T) {
	cfg := testConfig()
	var s DirectionState

	s = StepDirection(s, cfg, right, 0.1)
	if !nearVec(s.Current, cp.Vector{X: 0.5}) {
		t.Fatalf("expected half way after half the window, got %v", s.Current)
	}
	if s.Phase() != DirectionAccelerating {
		t.Fatalf("expected accelerating, got %v", s.Phase())
	}
}

func TestDecelerationCapturesLastDirection(t *testing.T) {
	cfg := testConfig()
	var s DirectionState
	s = StepDirection(s, cfg, cp.Vector{X: 0, Y: 2}, 0.2)

	s = StepDirection(s, cfg, cp.Vector{}, 0.1)
	if s.Moving {
		t.Fatal("expected not moving once input is zero")
	}
	if s.Last != (cp.Vector{X: 0, Y: 1}) {
		t.Fatalf("expected last direction (0,1), got %v", s.Last)
	}
	if !nearVec(s.Current, cp.Vector{X: 0, Y: 0.5}) {
		t.Fatalf("expected half decelerated, got %v", s.Current)
	}
	if s.Phase() != DirectionDecelerating {
		t.Fatalf("expected decelerating, got %v", s.Phase())
	}

	s = StepDirection(s, cfg, cp.Vector{}, 0.1)
	if s.Current != (cp.Vector{}) {
		t.Fatalf("expected full stop, got %v", s.Current)
	}
	if s.Phase() != DirectionIdle {
		t.Fatalf("expected idle, got %v", s.Phase())
	}
}

func TestCurveHoldsTerminalValueAfterDuration(t *testing.T) {
	cfg := testConfig()
	cfg.AccelCurve = curve.Func(func(t float64) float64 { return t * 0.5 })
	var s DirectionState

	s = StepDirection(s, cfg, right, 0.2)
	s = StepDirection(s, cfg, right, 0.2)
	if s.CurveTime != 0.2 {
		t.Fatalf("expected curve time to stop at the duration, got %v", s.CurveTime)
	}
	if !nearVec(s.Current, cp.Vector{X: 0.75}) {
		t.Fatalf("expected terminal value blend, got %v", s.Current)
	}
}

func TestDirectionMagnitudeStaysInUnitRange(t *testing.T) {
	cfg := testConfig()
	// overshooting curve output is clamped
	cfg.AccelCurve = curve.Func(func(t float64) float64 { return 1.5 * t })
	cfg.DecelCurve = curve.Func(func(t float64) float64 { return -0.5 + t })

	rng := rand.New(rand.NewSource(7))
	inputs := []cp.Vector{{}, {X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {X: 0.7071, Y: 0.7071}, {X: 4, Y: -3}}
	var s DirectionState
	for i := 0; i < 5000; i++ {
		in := inputs[rng.Intn(len(inputs))]
		dt := rng.Float64() * 0.1
		s = StepDirection(s, cfg, in, dt)
		if l := s.Current.Length(); l > 1+1e-9 || l < 0 {
			t.Fatalf("tick %d: magnitude %v out of range", i, l)
		}
	}
}

func TestEdgeRequiresZeroBeforeNonZero(t *testing.T) {
	cfg := testConfig()
	var s DirectionState
	s = StepDirection(s, cfg, right, 0.05)
	s = StepDirection(s, cfg, right, 0.05)
	before := s.CurveTime

	// direction change without passing through zero does not restart the curve
	s = StepDirection(s, cfg, cp.Vector{Y: 1}, 0.05)
	if !near(s.CurveTime, before+0.05) {
		t.Fatalf("expected curve time to keep running, got %v", s.CurveTime)
	}
}

func TestSpeedBlend(t *testing.T) {
	cfg := testConfig()
	cfg.SlowFraction = 0.5
	cfg.SpeedTransitionDuration = 0.25

	s := SpeedState{Current: 5}
	s = StepSpeed(s, cfg, true, 0.1)
	if !near(s.Current, 4) {
		t.Fatalf("expected 4 after 0.1s, got %v", s.Current)
	}
	s = StepSpeed(s, cfg, true, 0.25)
	if s.Current != 2.5 {
		t.Fatalf("expected to land on 2.5, got %v", s.Current)
	}
	s = StepSpeed(s, cfg, true, 1)
	if s.Current != 2.5 {
		t.Fatalf("expected to hold 2.5, got %v", s.Current)
	}

	s = StepSpeed(s, cfg, false, 10)
	if s.Current != 5 {
		t.Fatalf("expected ratio clamp to stop at 5, got %v", s.Current)
	}
}

func TestSpeedZeroTransitionSnaps(t *testing.T) {
	cfg := testConfig()
	cfg.SlowFraction = 0.2
	cfg.SpeedTransitionDuration = 0

	s := StepSpeed(SpeedState{Current: 5}, cfg, true, 0.016)
	if s.Current != 1 {
		t.Fatalf("expected snap to 1, got %v", s.Current)
	}
}

func TestDashScenario(t *testing.T) {
	cfg := testConfig()
	s := NewDashState(cfg)

	s, fired := StepDash(s, cfg, true, true, 0)
	if !fired {
		t.Fatal("expected first dash to fire")
	}
	if s.Bonus != 10 {
		t.Fatalf("expected full bonus on the trigger tick, got %v", s.Bonus)
	}

	s, fired = StepDash(s, cfg, false, true, 0.5)
	if fired {
		t.Fatal("no trigger was requested")
	}
	if s.Bonus != 5 {
		t.Fatalf("expected bonus 5 after half the dash, got %v", s.Bonus)
	}

	s, fired = StepDash(s, cfg, true, true, 0)
	if fired {
		t.Fatal("expected trigger during cooldown to be ignored")
	}
	if s.Bonus != 5 || s.Elapsed != 0.5 {
		t.Fatalf("expected decay to continue untouched, got bonus=%v elapsed=%v", s.Bonus, s.Elapsed)
	}
	if s.Phase(cfg) != DashActive {
		t.Fatalf("expected active phase, got %v", s.Phase(cfg))
	}

	s, _ = StepDash(s, cfg, false, true, 0.5)
	if s.Bonus != 0 {
		t.Fatalf("expected bonus to end at the dash duration, got %v", s.Bonus)
	}
	if s.Phase(cfg) != DashCooling {
		t.Fatalf("expected cooling phase, got %v", s.Phase(cfg))
	}

	s, fired = StepDash(s, cfg, true, true, 1)
	if !fired {
		t.Fatal("expected dash to fire once the cooldown elapsed")
	}
}

func TestDashEndsWhenIdle(t *testing.T) {
	cfg := testConfig()
	s := NewDashState(cfg)
	s, _ = StepDash(s, cfg, true, true, 0)
	s, _ = StepDash(s, cfg, false, true, 0.1)
	if s.Bonus <= 0 {
		t.Fatalf("expected active bonus, got %v", s.Bonus)
	}

	s, _ = StepDash(s, cfg, false, false, 0.1)
	if s.Bonus != 0 {
		t.Fatalf("expected bonus to drop to zero when idle, got %v", s.Bonus)
	}
	s, _ = StepDash(s, cfg, false, true, 0.1)
	if s.Bonus != 0 {
		t.Fatalf("expected the dash to stay over after resuming, got %v", s.Bonus)
	}
}

func TestDashBonusNonIncreasingBetweenTriggers(t *testing.T) {
	cfg := testConfig()
	cfg.DashCooldown = 0.3
	rng := rand.New(rand.NewSource(11))

	s := NewDashState(cfg)
	prev := s.Bonus
	for i := 0; i < 2000; i++ {
		var fired bool
		s, fired = StepDash(s, cfg, rng.Intn(5) == 0, rng.Intn(4) != 0, rng.Float64()*0.05)
		if s.Bonus < 0 || s.Bonus > cfg.DashSpeed {
			t.Fatalf("tick %d: bonus %v out of range", i, s.Bonus)
		}
		if !fired && s.Bonus > prev {
			t.Fatalf("tick %d: bonus rose from %v to %v without a trigger", i, prev, s.Bonus)
		}
		if s.Elapsed >= cfg.DashDuration && s.Bonus != 0 {
			t.Fatalf("tick %d: bonus %v after the dash duration", i, s.Bonus)
		}
		prev = s.Bonus
	}
}

func TestDashZeroDurationHasNoBonus(t *testing.T) {
	cfg := testConfig()
	cfg.DashDuration = 0
	s, fired := StepDash(NewDashState(cfg), cfg, true, true, 0.016)
	if !fired || s.Bonus != 0 {
		t.Fatalf("expected trigger with zero bonus, got fired=%v bonus=%v", fired, s.Bonus)
	}
}

func TestRotation(t *testing.T) {
	cfg := testConfig()
	cfg.RotationDuration = 0.2

	dir := DirectionState{Current: cp.Vector{Y: 1}, Last: cp.Vector{X: 1}}
	var s RotationState
	s = StepRotation(s, cfg, dir, 0.1)
	if !near(s.Heading, math.Pi/4) {
		t.Fatalf("expected 45 degrees half way, got %v", s.Heading)
	}
	s = StepRotation(s, cfg, dir, 0.5)
	if !near(s.Heading, math.Pi/2) {
		t.Fatalf("expected 90 degrees, got %v", s.Heading)
	}

	idle := DirectionState{Last: cp.Vector{X: -1}}
	s = StepRotation(s, cfg, idle, 0.1)
	if s.Elapsed != 0 {
		t.Fatalf("expected rotation timer reset when idle, got %v", s.Elapsed)
	}
	if !near(s.Heading, math.Pi) {
		t.Fatalf("expected heading to hold the last direction, got %v", s.Heading)
	}

	cfg.RotationEnabled = false
	s = StepRotation(s, cfg, dir, 0.1)
	if s.Heading != 0 {
		t.Fatalf("expected heading fixed at 0 when disabled, got %v", s.Heading)
	}
}

func TestRotationKeepsHeadingWithoutDirection(t *testing.T) {
	cfg := testConfig()
	s := RotationState{Heading: 1.25}
	s = StepRotation(s, cfg, DirectionState{}, 0.1)
	if s.Heading != 1.25 {
		t.Fatalf("expected heading to be kept, got %v", s.Heading)
	}
}

func TestClampToCamera(t *testing.T) {
	half := cp.Vector{X: 8.5, Y: 4.5}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		cam := cp.Vector{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}
		pos := cp.Vector{X: rng.Float64()*400 - 200, Y: rng.Float64()*400 - 200}
		got := ClampToCamera(pos, cam, half)
		if math.Abs(got.X-cam.X) > half.X+1e-9 || math.Abs(got.Y-cam.Y) > half.Y+1e-9 {
			t.Fatalf("clamped %v outside camera %v", got, cam)
		}
		inside := math.Abs(pos.X-cam.X) <= half.X && math.Abs(pos.Y-cam.Y) <= half.Y
		if inside && got != pos {
			t.Fatalf("position %v inside bounds was moved to %v", pos, got)
		}
	}
}

func TestScaleFor(t *testing.T) {
	cfg := testConfig()
	cfg.MinScaleFraction = 0.5
	def := cp.Vector{X: 2, Y: 4}

	cases := []struct {
		name  string
		speed float64
		dir   cp.Vector
		want  cp.Vector
	}{
		{"still", 5, cp.Vector{}, def},
		{"max_speed", 15, right, cp.Vector{X: 1, Y: 2}},
		{"half_speed", 7.5, right, cp.Vector{X: 1.5, Y: 3}},
		{"over_max_clamps", 40, right, cp.Vector{X: 1, Y: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ScaleFor(cfg, def, c.speed, c.dir); !nearVec(got, c.want) {
				t.Fatalf("ScaleFor = %v, want %v", got, c.want)
			}
		})
	}

	cfg.ScaleEnabled = false
	for _, speed := range []float64{0, 3, 15, 100} {
		if got := ScaleFor(cfg, def, speed, right); got != def {
			t.Fatalf("expected default scale when disabled, got %v", got)
		}
	}
}

func TestControllerDashScenario(t *testing.T) {
	cfg := testConfig()
	c, err := NewController(cfg, cp.Vector{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}

	// start moving so the dash is not cut off on the trigger tick
	c.Update(Input{Direction: right})

	out := c.Update(Input{Direction: right, Dash: true})
	if !out.DashFired {
		t.Fatal("expected dash to fire")
	}

	out = c.Update(Input{Direction: right, DT: 0.5})
	if c.State().Dash.Bonus != 5 {
		t.Fatalf("expected bonus 5, got %v", c.State().Dash.Bonus)
	}
	if out.Speed != 10 {
		t.Fatalf("expected base 5 + bonus 5, got %v", out.Speed)
	}

	out = c.Update(Input{Direction: right, Dash: true, Position: out.Position})
	if out.DashFired {
		t.Fatal("expected dash inside cooldown to be rejected")
	}
	if c.State().Dash.Bonus != 5 {
		t.Fatalf("expected bonus to be unaffected, got %v", c.State().Dash.Bonus)
	}
}

func TestControllerTranslatesAndClamps(t *testing.T) {
	cfg := testConfig()
	cfg.AccelDuration = 0
	cfg.BoundsHalfExtents = cp.Vector{X: 8.5, Y: 4.5}
	c, err := NewController(cfg, cp.Vector{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}

	out := c.Update(Input{Direction: right, DT: 1})
	if !nearVec(out.Position, cp.Vector{X: 5}) {
		t.Fatalf("expected to travel 5 units, got %v", out.Position)
	}
	out = c.Update(Input{Direction: right, Position: out.Position, DT: 1})
	if !nearVec(out.Position, cp.Vector{X: 8.5}) {
		t.Fatalf("expected clamp at 8.5, got %v", out.Position)
	}
	out = c.Update(Input{Direction: right, Position: out.Position, Camera: cp.Vector{X: 20}, DT: 0})
	if !nearVec(out.Position, cp.Vector{X: 11.5}) {
		t.Fatalf("expected clamp region to follow the camera, got %v", out.Position)
	}
}

func TestControllerZeroTickIsIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.AccelCurve = curve.Func(func(t float64) float64 { return t * t })
	c, err := NewController(cfg, cp.Vector{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}

	in := Input{Direction: cp.Vector{X: 1, Y: 1}, Slow: true, DT: 0.05}
	out := c.Update(in)
	in.Position = out.Position
	out = c.Update(in)
	in.Position = out.Position

	prevState := c.State()
	prevOut := out
	in.DT = 0
	for i := 0; i < 5; i++ {
		out = c.Update(in)
	}
	if out.Position != prevOut.Position || out.Heading != prevOut.Heading || out.Scale != prevOut.Scale || out.Speed != prevOut.Speed {
		t.Fatalf("zero ticks changed output: %+v -> %+v", prevOut, out)
	}
	if c.State().Direction.Current != prevState.Direction.Current || c.State().Speed.Current != prevState.Speed.Current {
		t.Fatalf("zero ticks changed smoothed state")
	}
}

func TestControllerScaleDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ScaleEnabled = false
	def := cp.Vector{X: 0.5, Y: 0.75}
	c, err := NewController(cfg, def)
	if err != nil {
		t.Fatal(err)
	}
	var pos cp.Vector
	for i := 0; i < 60; i++ {
		out := c.Update(Input{Direction: right, Dash: i == 3, Position: pos, DT: 1.0 / 60})
		if out.Scale != def {
			t.Fatalf("tick %d: expected default scale, got %v", i, out.Scale)
		}
		pos = out.Position
	}
}

func TestControllerSetConfigKeepsState(t *testing.T) {
	c, err := NewController(testConfig(), cp.Vector{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	c.Update(Input{Direction: right, DT: 0.1})
	before := c.State()

	next := testConfig()
	next.BaseSpeed = 7
	if err := c.SetConfig(next); err != nil {
		t.Fatal(err)
	}
	if c.State() != before {
		t.Fatal("expected state to survive a config swap")
	}
	if c.Config().BaseSpeed != 7 {
		t.Fatalf("expected new config, got %v", c.Config().BaseSpeed)
	}

	bad := testConfig()
	bad.DashCooldown = -1
	if err := c.SetConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if c.Config().BaseSpeed != 7 {
		t.Fatal("expected rejected config to leave the old one in place")
	}

	c.Reset()
	if c.State().Direction.Moving || c.State().Speed.Current != 7 {
		t.Fatalf("expected spawn state after reset, got %+v", c.State())
	}
}
