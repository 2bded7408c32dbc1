// Package control evaluates the fixed-gain state-feedback law that maps the
// estimated state and the setpoint to body torques and collective thrust.
//
// The law has the familiar LQR shape
//
//	u = Bias - K (x - target)
//
// where x is the 12-element state in [flight.StateVector.Array] order and the
// target carries the setpoint position in its first three entries. The gains
// were designed offline about hover; nothing here solves or adapts them.
//
//	law := control.Default()
//	cmd := law.Compute(state, setpoint)
//
// Compute never allocates and has no error path.
package control
