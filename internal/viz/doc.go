// Package viz is the live terminal view of a running flight simulation.
//
// [Model] runs a [flightsim.Simulator] in the background and samples its
// telemetry group on a fixed refresh tick, so the view reads exactly what a
// ground station would.
//
// # Key Bindings
//
//	O     - Toggle the observer
//	R     - Request an observer reset
//	Space - Freeze the display
//	C     - Clear the ground track
//	?     - Show help
//	Q     - Quit
package viz
