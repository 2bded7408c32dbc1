package flightsim

import (
	"math"
	"math/rand"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/flight"
	"github.com/san-kum/flowctl/internal/plant"
	"github.com/san-kum/flowctl/internal/sensors"
)

// minFlowHeight keeps the flow model finite on the ground.
const minFlowHeight = 0.05

// drivers stands in for the range and flow sensor tasks.
type drivers struct {
	cache      *sensors.Cache
	rng        *rand.Rand
	rangeEvery int
	flowEvery  int
	rangeNoise float64
	flowNoise  float64
}

func newDrivers(cache *sensors.Cache, cfg Config) *drivers {
	return &drivers{
		cache:      cache,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		rangeEvery: every(cfg.RangeRate),
		flowEvery:  every(cfg.FlowRate),
		rangeNoise: cfg.RangeNoise,
		flowNoise:  cfg.FlowNoise,
	}
}

// poll delivers any sample due on tick i.
func (d *drivers) poll(i int, x dynamo.State) {
	if i%d.rangeEvery == 0 {
		d.cache.RecordRange(float32(Range(x) + d.rangeNoise*d.rng.NormFloat64()))
	}
	if i%d.flowEvery == 0 {
		nx, ny := Flow(x)
		d.cache.RecordFlow(
			float32(nx+d.flowNoise*d.rng.NormFloat64()),
			float32(ny+d.flowNoise*d.rng.NormFloat64()),
		)
	}
}

// Range is the distance a downward range sensor reads along body z.
func Range(x dynamo.State) float64 {
	tilt := math.Cos(x[plant.Roll]) * math.Cos(x[plant.Pitch])
	if tilt <= 0 {
		return 0
	}
	return math.Max(0, x[plant.Z]) / tilt
}

// Flow is the optical-flow reading for the true state.
func Flow(x dynamo.State) (nx, ny float64) {
	v := plant.BodyVelocity(x)
	h := math.Max(x[plant.Z], minFlowHeight)
	k := float64(flight.KFlow)
	nx = k * (v[0]/h - x[plant.Q])
	ny = k * (x[plant.P] + v[1]/h)
	return nx, ny
}

// IMU synthesizes the gyro and accelerometer reading.
func IMU(q *plant.Quadrotor, x dynamo.State, u dynamo.Control) flight.RawIMU {
	return flight.RawIMU{
		GyroX:  float32(x[plant.P]),
		GyroY:  float32(x[plant.Q]),
		GyroZ:  float32(x[plant.R]),
		AccelZ: float32(q.SpecificForceZ(x, u)),
	}
}

// External is what an onboard full-state filter would report. Its pitch has
// the opposite sign to the plant's.
func External(x dynamo.State) flight.ExternalEstimate {
	return flight.ExternalEstimate{
		X: float32(x[plant.X]), Y: float32(x[plant.Y]), Z: float32(x[plant.Z]),
		Roll:  float32(x[plant.Roll]),
		Pitch: float32(-x[plant.Pitch]),
		Yaw:   float32(x[plant.Yaw]),
		VX:    float32(x[plant.VX]), VY: float32(x[plant.VY]), VZ: float32(x[plant.VZ]),
	}
}
