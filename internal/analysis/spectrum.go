// Package analysis looks for cycles in simulated series.
package analysis

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

var ErrTooShort = errors.New("analysis: series needs at least four points")

// Spectrum is the one-sided power spectrum of a mean-removed series.
// Frequencies are in cycles per step.
type Spectrum struct {
	Freq  []float64
	Power []float64
}

func PowerSpectrum(series []float64) (Spectrum, error) {
	n := len(series)
	if n < 4 {
		return Spectrum{}, ErrTooShort
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, n)
	for k, v := range series {
		centered[k] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, centered)

	s := Spectrum{
		Freq:  make([]float64, len(coeff)),
		Power: make([]float64, len(coeff)),
	}
	for k, c := range coeff {
		a := cmplx.Abs(c)
		s.Freq[k] = fft.Freq(k)
		s.Power[k] = a * a / float64(n)
	}
	return s, nil
}

// DominantPeriod returns the period, in steps, of the strongest non-zero
// frequency. ok is false for a flat series.
func (s Spectrum) DominantPeriod() (period float64, ok bool) {
	best := 0
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > s.Power[best] || best == 0 {
			best = k
		}
	}
	if best == 0 || s.Power[best] <= 1e-12 {
		return 0, false
	}
	return 1 / s.Freq[best], true
}
