// Package config holds the YAML run configuration and its presets.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/flowctl/internal/flightsim"
	"github.com/san-kum/flowctl/internal/integrators"
	"github.com/san-kum/flowctl/internal/plan"
	"github.com/san-kum/flowctl/internal/plant"
	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

const (
	DefaultPlan       = "hover"
	DefaultIntegrator = "rk4"
)

type Config struct {
	Plan         string        `yaml:"plan"`
	Integrator   string        `yaml:"integrator"`
	Duration     float64       `yaml:"duration"`
	Seed         int64         `yaml:"seed"`
	UseObserver  bool          `yaml:"use_observer"`
	ResetOnStart bool          `yaml:"reset_on_start"`
	InitState    InitConfig    `yaml:"init_state"`
	Sensors      SensorConfig  `yaml:"sensors"`
	Vehicle      VehicleConfig `yaml:"vehicle"`
	LogRate      float64       `yaml:"log_rate"`
}

// InitConfig is the starting pose. Angles are radians.
type InitConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Roll  float64 `yaml:"roll"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
}

type SensorConfig struct {
	RangeRate  float64 `yaml:"range_rate"`
	FlowRate   float64 `yaml:"flow_rate"`
	RangeNoise float64 `yaml:"range_noise"`
	FlowNoise  float64 `yaml:"flow_noise"`
}

type VehicleConfig struct {
	Mass    float64 `yaml:"mass"`
	Drag    float64 `yaml:"drag"`
	AngDrag float64 `yaml:"ang_drag"`
}

func DefaultConfig() *Config {
	sim := flightsim.DefaultConfig()
	return &Config{
		Plan:         DefaultPlan,
		Integrator:   DefaultIntegrator,
		ResetOnStart: sim.ResetOnStart,
		Sensors: SensorConfig{
			RangeRate:  sim.RangeRate,
			FlowRate:   sim.FlowRate,
			RangeNoise: sim.RangeNoise,
			FlowNoise:  sim.FlowNoise,
		},
		Vehicle: VehicleConfig{
			Mass:    plant.DefaultMass,
			Drag:    plant.DefaultDrag,
			AngDrag: plant.DefaultAngDrag,
		},
		LogRate: sim.LogRate,
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Sim converts c into a flightsim configuration.
func (c *Config) Sim() flightsim.Config {
	sim := flightsim.DefaultConfig()
	sim.Duration = c.Duration
	sim.Seed = c.Seed
	sim.UseObserver = c.UseObserver
	sim.ResetOnStart = c.ResetOnStart
	sim.RangeRate = c.Sensors.RangeRate
	sim.FlowRate = c.Sensors.FlowRate
	sim.RangeNoise = c.Sensors.RangeNoise
	sim.FlowNoise = c.Sensors.FlowNoise
	sim.LogRate = c.LogRate

	x := plant.Hovering(c.InitState.X, c.InitState.Y, c.InitState.Z)
	x[plant.Roll] = c.InitState.Roll
	x[plant.Pitch] = c.InitState.Pitch
	x[plant.Yaw] = c.InitState.Yaw
	sim.Initial = x
	return sim
}

// Quadrotor builds the plant model.
func (c *Config) Quadrotor() (*plant.Quadrotor, error) {
	q := plant.NewQuadrotor()
	for name, v := range map[string]float64{
		"mass":     c.Vehicle.Mass,
		"drag":     c.Vehicle.Drag,
		"ang_drag": c.Vehicle.AngDrag,
	} {
		if err := q.SetParam(name, v); err != nil {
			return nil, fmt.Errorf("vehicle: %w", err)
		}
	}
	return q, nil
}

// Build resolves the plan, integrator and vehicle into a simulator.
func (c *Config) Build() (*flightsim.Simulator, error) {
	p, err := plan.Resolve(c.Plan)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(c.Integrator)
	if err != nil {
		return nil, err
	}
	q, err := c.Quadrotor()
	if err != nil {
		return nil, err
	}
	return flightsim.New(q, integ, p)
}
