// Package analysis looks for oscillation in stored telemetry.
//
// A well-tuned hover settles; a marginal loop rings. [NewSpectrum] turns one
// telemetry column into a one-sided amplitude spectrum so the ringing
// frequency can be read off with [Spectrum.Dominant].
package analysis
