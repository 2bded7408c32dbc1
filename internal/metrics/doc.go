// Package metrics scores simulated flights. Each metric implements
// dynamo.Metric and is fed one snapshot per base tick.
package metrics

import "github.com/san-kum/flowctl/internal/dynamo"

// Default returns the metrics reported for every run.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewTracking(),
		NewEstimationError(),
		NewSaturation(),
		NewControlEffort(),
		NewStability(DefaultTiltLimit),
	}
}
