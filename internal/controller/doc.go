// Package controller runs the flight pipeline for one scheduler tick:
// sensor cache snapshot, state estimation, feedback law, mixer and safety
// gate, then delivery to the actuation backend.
//
// All pipeline state lives in a State value owned by the caller and passed
// to Step. Sensor drivers write State.Sensors concurrently; tuning tools
// write the runtime parameters through Params; telemetry readers sample
// State.Log. None of these block the tick.
//
//	st := controller.New()
//	for tick := uint32(0); ; tick++ {
//		controller.Step(st, controller.Inputs{Tick: tick, IMU: imu, Setpoint: sp}, backend)
//	}
package controller
