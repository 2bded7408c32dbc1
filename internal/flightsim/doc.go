// Package flightsim flies the controller against a simulated quadrotor.
//
// A Simulator plays the role of everything around the flight core: the base
// scheduler ticking at flight.RateMainLoop, range and optical-flow drivers
// writing the sensor cache at their own cadence, the IMU, an external
// estimator for pass-through mode, and the actuation backend that holds the
// last motor command and turns it back into torques and thrust through the
// inverse mixer. Setpoints come from a plan.Plan.
//
// Simulators are not safe for concurrent use. Use an Ensemble to run many
// seeds in parallel.
package flightsim
