package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/supplysim/supplysim/sim"
	"github.com/supplysim/supplysim/sim/supplychain"
	"github.com/supplysim/supplysim/sim/trace"
)

// ScenarioSchemaVersion is the scenario file version written by this build.
const ScenarioSchemaVersion = "1.0.0"

// supportedScenarioVersions is the range of scenario versions this build reads.
const supportedScenarioVersions = ">= 1.0.0, < 2.0.0"

// Scenario is a YAML scenario file. Absent keys keep the default value.
type Scenario struct {
	Version       string                `yaml:"version"`
	Seed          *int64                `yaml:"seed,omitempty"`
	Horizon       *int64                `yaml:"horizon,omitempty"`
	CollectAt     *int64                `yaml:"collect_at,omitempty"`
	Customers     *int                  `yaml:"customers,omitempty"`
	Trace         string                `yaml:"trace,omitempty"`
	Distributions ScenarioDistributions `yaml:"distributions,omitempty"`
}

// ScenarioDistributions holds the optional distribution overrides.
type ScenarioDistributions struct {
	OrderInterval     *sim.DistSpec `yaml:"order_interval,omitempty"`
	OrderQuantity     *sim.DistSpec `yaml:"order_quantity,omitempty"`
	ManufacturingTime *sim.DistSpec `yaml:"manufacturing_time,omitempty"`
	TransportTime     *sim.DistSpec `yaml:"transport_time,omitempty"`
}

// LoadScenario reads and strictly parses a scenario file.
// Unknown keys are errors, so a misspelt key never silently falls back to a default.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := checkScenarioVersion(sc.Version); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

func checkScenarioVersion(v string) error {
	if v == "" {
		return fmt.Errorf("version is required (current: %s)", ScenarioSchemaVersion)
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", v, err)
	}
	constraint, err := semver.NewConstraint(supportedScenarioVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("unsupported version %s; supported: %s", version, supportedScenarioVersions)
	}
	return nil
}

// Apply overlays the scenario's values on cfg.
func (sc *Scenario) Apply(cfg *supplychain.Config) {
	if sc.Seed != nil {
		cfg.Seed = *sc.Seed
	}
	if sc.Horizon != nil {
		cfg.Horizon = *sc.Horizon
	}
	if sc.CollectAt != nil {
		cfg.CollectAt = *sc.CollectAt
	}
	if sc.Customers != nil {
		cfg.Customers = *sc.Customers
	}
	if sc.Trace != "" {
		cfg.TraceLevel = trace.TraceLevel(sc.Trace)
	}
	d := sc.Distributions
	if d.OrderInterval != nil {
		cfg.OrderInterval = *d.OrderInterval
	}
	if d.OrderQuantity != nil {
		cfg.OrderQuantity = *d.OrderQuantity
	}
	if d.ManufacturingTime != nil {
		cfg.ManufacturingTime = *d.ManufacturingTime
	}
	if d.TransportTime != nil {
		cfg.TransportTime = *d.TransportTime
	}
}
