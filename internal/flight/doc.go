// Package flight holds the data model shared by the flight-control core:
//
//   - [SensorSample]: latest range and optical-flow readings with arrival counts
//   - [RawIMU]: per-tick gyro and vertical accelerometer reading
//   - [StateVector]: the 12-element position/attitude/velocity/rate estimate
//   - [Setpoint]: desired position plus the z-axis mode
//   - [ControlCommand]: body torques and collective thrust
//   - [ActuatorCommand]: four saturated motor values
//
// All scalars are float32. Nothing in this package allocates, blocks or
// returns an error.
package flight
