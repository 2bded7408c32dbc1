package flight

import "math"

const degToRad = math.Pi / 180

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * float32(degToRad)
}

// IMUFromDriverUnits converts a driver reading in deg/s and g into a RawIMU.
func IMUFromDriverUnits(gyroX, gyroY, gyroZ, accZ float32) RawIMU {
	return RawIMU{
		GyroX:  Radians(gyroX),
		GyroY:  Radians(gyroY),
		GyroZ:  Radians(gyroZ),
		AccelZ: Gravity * accZ,
	}
}

// ExternalFromDegrees builds an ExternalEstimate from an attitude reported in degrees.
func ExternalFromDegrees(x, y, z, roll, pitch, yaw, vx, vy, vz float32) ExternalEstimate {
	return ExternalEstimate{
		X: x, Y: y, Z: z,
		Roll: Radians(roll), Pitch: Radians(pitch), Yaw: Radians(yaw),
		VX: vx, VY: vy, VZ: vz,
	}
}
