package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	ErrTooShort  = errors.New("analysis: too few samples")
	ErrNonFinite = errors.New("analysis: non-finite sample")
	ErrRate      = errors.New("analysis: sample rate must be positive")
)

const minSamples = 4

// Spectrum is the one-sided amplitude spectrum of a uniformly sampled signal
// with its mean removed.
type Spectrum struct {
	Freq      []float64 // Hz
	Amplitude []float64 // signal units
}

// NewSpectrum transforms x sampled at rate Hz.
func NewSpectrum(x []float64, rate float64) (*Spectrum, error) {
	n := len(x)
	if n < minSamples {
		return nil, ErrTooShort
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, ErrRate
	}

	mean := 0.0
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNonFinite
		}
		mean += v
	}
	mean /= float64(n)
	seq := make([]float64, n)
	for i, v := range x {
		seq[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, seq)
	s := &Spectrum{
		Freq:      make([]float64, len(coeff)),
		Amplitude: make([]float64, len(coeff)),
	}
	for i, c := range coeff {
		s.Freq[i] = fft.Freq(i) * rate
		a := cmplx.Abs(c) / float64(n)
		// Fold the mirrored half in, except at DC and Nyquist.
		if i > 0 && !(n%2 == 0 && i == n/2) {
			a *= 2
		}
		s.Amplitude[i] = a
	}
	return s, nil
}

// Dominant returns the strongest non-DC component.
func (s *Spectrum) Dominant() (freq, amplitude float64) {
	for i := 1; i < len(s.Amplitude); i++ {
		if s.Amplitude[i] > amplitude {
			freq, amplitude = s.Freq[i], s.Amplitude[i]
		}
	}
	return freq, amplitude
}

// SampleRate estimates the rate of uniformly spaced sample times.
func SampleRate(times []float64) (float64, error) {
	if len(times) < 2 {
		return 0, ErrTooShort
	}
	span := times[len(times)-1] - times[0]
	if span <= 0 {
		return 0, ErrRate
	}
	return float64(len(times)-1) / span, nil
}
