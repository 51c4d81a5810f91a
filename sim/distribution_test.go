package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformSampler_StaysWithinRange(t *testing.T) {
	rng := NewSharedRNG(NewSimulationKey(42))
	s, err := NewIntSampler(Uniform(1, 10))
	require.NoError(t, err)

	lo, hi := s.Bounds()
	assert.Equal(t, int64(1), lo)
	assert.Equal(t, int64(10), hi)
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 1 || v > 10 {
			t.Fatalf("sample %d: %d outside [1, 10]", i, v)
		}
	}
	assert.Equal(t, int64(10000), rng.Draws(), "one draw per uniform sample")
}

func TestUniformSampler_MeanMatchesMidpoint(t *testing.T) {
	rng := NewSharedRNG(NewSimulationKey(42))
	s, err := NewIntSampler(Uniform(2, 5))
	require.NoError(t, err)
	n := 10000
	sum := int64(0)
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	mean := float64(sum) / float64(n)
	if math.Abs(mean-3.5)/3.5 > 0.05 {
		t.Errorf("uniform mean = %.3f, want ≈ 3.5 (within 5%%)", mean)
	}
}

func TestConstantSampler_ConsumesNoDraw(t *testing.T) {
	rng := NewSharedRNG(NewSimulationKey(42))
	s, err := NewIntSampler(Constant(3))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(3), s.Sample(rng))
	}
	assert.Equal(t, int64(0), rng.Draws())
	lo, hi := s.Bounds()
	assert.Equal(t, int64(3), lo)
	assert.Equal(t, int64(3), hi)
}

func TestNewIntSampler_InvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
		want string
	}{
		{"empty type", DistSpec{}, "type is required"},
		{"unknown type", DistSpec{Type: "gaussian"}, "unknown distribution type"},
		{"uniform missing max", DistSpec{Type: DistUniform, Params: map[string]float64{"min": 1}}, `"max"`},
		{"uniform empty range", Uniform(5, 1), "empty"},
		{"uniform fractional", DistSpec{Type: DistUniform, Params: map[string]float64{"min": 1, "max": 2.5}}, "integer"},
		{"uniform NaN", DistSpec{Type: DistUniform, Params: map[string]float64{"min": math.NaN(), "max": 2}}, "finite"},
		{"constant missing value", DistSpec{Type: DistConstant}, `"value"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIntSampler(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDistSpec_String(t *testing.T) {
	assert.Equal(t, "uniform[1,5]", Uniform(1, 5).String())
	assert.Equal(t, "constant(3)", Constant(3).String())
}
