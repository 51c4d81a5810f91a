package sim

import (
	"fmt"
	"math"
)

// IntSampler generates integer samples (delays in ticks, order quantities).
type IntSampler interface {
	// Sample returns a value within Bounds().
	Sample(rng *SharedRNG) int64
	// Bounds returns the inclusive range of values Sample can return.
	Bounds() (lo, hi int64)
}

// DistSpec parameterizes an integer distribution.
// Loaded from YAML scenarios and CLI flags.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

const (
	DistUniform  = "uniform"
	DistConstant = "constant"
)

// Uniform returns a DistSpec for the closed integer range [lo, hi].
func Uniform(lo, hi int64) DistSpec {
	return DistSpec{Type: DistUniform, Params: map[string]float64{"min": float64(lo), "max": float64(hi)}}
}

// Constant returns a DistSpec that always yields v.
func Constant(v int64) DistSpec {
	return DistSpec{Type: DistConstant, Params: map[string]float64{"value": float64(v)}}
}

// String renders the distribution compactly for logs.
func (d DistSpec) String() string {
	switch d.Type {
	case DistUniform:
		return fmt.Sprintf("uniform[%g,%g]", d.Params["min"], d.Params["max"])
	case DistConstant:
		return fmt.Sprintf("constant(%g)", d.Params["value"])
	default:
		return d.Type
	}
}

// UniformSampler draws integers uniformly from [lo, hi], one draw per sample.
type UniformSampler struct {
	lo, hi int64
}

func (s *UniformSampler) Sample(rng *SharedRNG) int64 {
	return rng.IntBetween(s.lo, s.hi)
}

func (s *UniformSampler) Bounds() (int64, int64) { return s.lo, s.hi }

// ConstantSampler always returns the same fixed value and consumes no draw.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *SharedRNG) int64 {
	return s.value
}

func (s *ConstantSampler) Bounds() (int64, int64) { return s.value, s.value }

// requireParam checks that all required keys exist in a params map and hold
// finite integral values.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		v, ok := params[k]
		if !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %q must be a finite number, got %f", k, v)
		}
		if v != math.Trunc(v) {
			return fmt.Errorf("parameter %q must be an integer, got %g", k, v)
		}
	}
	return nil
}

// NewIntSampler creates an IntSampler from a DistSpec.
func NewIntSampler(spec DistSpec) (IntSampler, error) {
	switch spec.Type {
	case DistUniform:
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if hi < lo {
			return nil, fmt.Errorf("uniform range is empty: min %d > max %d", lo, hi)
		}
		return &UniformSampler{lo: lo, hi: hi}, nil

	case DistConstant:
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int64(spec.Params["value"])}, nil

	case "":
		return nil, fmt.Errorf("distribution type is required")

	default:
		return nil, fmt.Errorf("unknown distribution type %q; valid: uniform, constant", spec.Type)
	}
}
