package flightsim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/plant"
)

// ErrInvalidConfig is returned by Run for an unusable Config.
var ErrInvalidConfig = errors.New("flightsim: invalid config")

// Default driver and logging rates, Hz.
const (
	DefaultRangeRate = 40
	DefaultFlowRate  = 100
	DefaultLogRate   = 100
)

// Config controls one run.
type Config struct {
	Duration     float64 // s; zero flies the whole plan
	Seed         int64
	UseObserver  bool
	ResetOnStart bool
	Initial      dynamo.State // plant state; nil starts on the ground at the origin

	RangeRate  float64 // Hz
	FlowRate   float64 // Hz
	LogRate    float64 // Hz
	RangeNoise float64 // m, standard deviation
	FlowNoise  float64 // standard deviation

	ValidateState bool
	RealTime      bool // pace the run against the wall clock
}

func DefaultConfig() Config {
	return Config{
		ResetOnStart:  true,
		RangeRate:     DefaultRangeRate,
		FlowRate:      DefaultFlowRate,
		LogRate:       DefaultLogRate,
		RangeNoise:    0.002,
		FlowNoise:     0.05,
		ValidateState: true,
	}
}

func (c Config) validate() error {
	if c.Duration < 0 || math.IsNaN(c.Duration) {
		return fmt.Errorf("%w: duration %g", ErrInvalidConfig, c.Duration)
	}
	for name, rate := range map[string]float64{"range": c.RangeRate, "flow": c.FlowRate, "log": c.LogRate} {
		if !(rate > 0) || rate > RateBase {
			return fmt.Errorf("%w: %s rate %g outside (0, %d]", ErrInvalidConfig, name, rate, RateBase)
		}
	}
	if c.RangeNoise < 0 || c.FlowNoise < 0 {
		return fmt.Errorf("%w: negative noise", ErrInvalidConfig)
	}
	if c.Initial != nil && len(c.Initial) != plant.Dim {
		return fmt.Errorf("%w: initial state has %d components, want %d: %w",
			ErrInvalidConfig, len(c.Initial), plant.Dim, dynamo.ErrDimensionMismatch)
	}
	return nil
}

// every converts a rate into a tick interval at the base rate.
func every(rate float64) int {
	n := int(math.Round(RateBase / rate))
	if n < 1 {
		n = 1
	}
	return n
}
