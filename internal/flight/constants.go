package flight

// Physical and timing constants. These are derived offline and never change
// at runtime.
const (
	Gravity float32 = 9.81       // m/s²
	Dt      float32 = 0.002      // s, pipeline period
	KFlow   float32 = 4.09255568 // flow-to-velocity scale
	OZEq    float32 = 0.5        // m, hover height the observer is linearized about
)

// Scheduler rates, Hz. The pipeline runs every RateMainLoop/RateAttitude base ticks.
const (
	RateMainLoop = 1000
	RateAttitude = 500
)

// MotorMax is the upper saturation bound for an actuator command.
const MotorMax = 65535
