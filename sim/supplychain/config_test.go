package supplychain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplysim/supplysim/sim"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(50), cfg.Horizon)
	assert.Equal(t, int64(10), cfg.CollectAt)
	assert.Equal(t, 3, cfg.Customers)
}

func TestConfig_Validate_RejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero horizon", func(c *Config) { c.Horizon = 0 }, "horizon must be positive"},
		{"negative horizon", func(c *Config) { c.Horizon = -5 }, "horizon must be positive"},
		{"negative customers", func(c *Config) { c.Customers = -1 }, "customers must be non-negative"},
		{"negative collect_at", func(c *Config) { c.CollectAt = -1 }, "collect_at must be non-negative"},
		{"collect_at beyond horizon", func(c *Config) { c.CollectAt = 51 }, "beyond the horizon"},
		{"bad trace level", func(c *Config) { c.TraceLevel = "verbose" }, "unknown trace level"},
		{"empty interval range", func(c *Config) { c.OrderInterval = sim.Uniform(5, 1) }, "order_interval"},
		{"zero interval", func(c *Config) { c.OrderInterval = sim.Constant(0) }, "order_interval: minimum must be at least 1"},
		{"zero quantity", func(c *Config) { c.OrderQuantity = sim.Uniform(0, 10) }, "order_quantity: minimum must be at least 1"},
		{"negative lead time", func(c *Config) { c.ManufacturingTime = sim.Uniform(-1, 3) }, "manufacturing_time"},
		{"missing transport", func(c *Config) { c.TransportTime = sim.DistSpec{} }, "transport_time"},
		{"quantity above cap", func(c *Config) { c.OrderQuantity = sim.Uniform(1, MaxSampleValue+1) }, "order_quantity: maximum must be at most"},
		{"huge constant transport", func(c *Config) { c.TransportTime = sim.Constant(1 << 62) }, "transport_time: maximum must be at most"},
		{"huge uniform lead time", func(c *Config) { c.ManufacturingTime = sim.Uniform(0, 1<<62) }, "manufacturing_time: maximum must be at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			// AND construction fails fast
			s, err := NewSimulation(cfg)
			assert.Nil(t, s)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Validate_AcceptsEdgeValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 0
	cfg.CollectAt = cfg.Horizon
	cfg.ManufacturingTime = sim.Constant(0)
	cfg.TransportTime = sim.Constant(0)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_AcceptsMaximumAtCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OrderInterval = sim.Uniform(1, MaxSampleValue)
	cfg.TransportTime = sim.Constant(MaxSampleValue)
	assert.NoError(t, cfg.Validate())
}
