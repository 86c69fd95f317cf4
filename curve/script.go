package curve

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script is a curve whose body is a tengo program. The program reads the
// normalized time from the global `t` and writes its result to `out`:
//
//	math := import("math")
//	out = 1 - math.pow(1 - t, 2)
type Script struct {
	name     string
	compiled *tengo.Compiled
	failed   bool
}

// NewScript compiles src and probes it at a few points so broken scripts
// are rejected when the config is loaded rather than mid-frame.
func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	if err := script.Add("t", 0.0); err != nil {
		return nil, fmt.Errorf("%w: script %s: %v", ErrInvalidCurve, name, err)
	}
	if err := script.Add("out", 0.0); err != nil {
		return nil, fmt.Errorf("%w: script %s: %v", ErrInvalidCurve, name, err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile script %s: %v", ErrInvalidCurve, name, err)
	}

	s := &Script{name: name, compiled: compiled}
	for _, probe := range []float64{0, 0.5, 1} {
		if _, err := s.run(probe); err != nil {
			return nil, fmt.Errorf("%w: script %s at t=%v: %v", ErrInvalidCurve, name, probe, err)
		}
	}
	return s, nil
}

func (s *Script) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Evaluate runs the script. A runtime failure degrades to the linear curve
// and is logged once.
func (s *Script) Evaluate(t float64) float64 {
	if s == nil || s.compiled == nil {
		return t
	}
	v, err := s.run(t)
	if err != nil {
		if !s.failed {
			log.Printf("curve: script %s: %v (falling back to linear)", s.name, err)
			s.failed = true
		}
		return t
	}
	return v
}

func (s *Script) run(t float64) (float64, error) {
	if err := s.compiled.Set("t", t); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	out := s.compiled.Get("out")
	switch out.ValueType() {
	case "float", "int":
		return out.Float(), nil
	default:
		return 0, fmt.Errorf("out must be a number, got %s", out.ValueType())
	}
}
