package frequency

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/spectrum"
)

// Segment length bounds used by Analyze.
const (
	MinFFTSize = 64
	MaxFFTSize = 16384
)

var errNoSamples = errors.New("frequency: no samples to analyze")

// Report is the result of Analyze.
type Report struct {
	SampleRate float64
	FFTSize    int
	// DominantHz is the interpolated frequency of the strongest non-DC bin.
	DominantHz float64
	Stats
}

// Analyze computes a Welch-averaged magnitude spectrum of samples and
// returns its statistics and dominant frequency.
func Analyze(samples []float64, sampleRate float64) (Report, error) {
	if len(samples) == 0 {
		return Report{}, errNoSamples
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Report{}, fmt.Errorf("frequency: sample rate must be > 0: %v", sampleRate)
	}

	fftSize := max(MinFFTSize, min(MaxFFTSize, spectrum.NextPowerOfTwo(len(samples))))
	mag, err := spectrum.Welch(samples, fftSize)
	if err != nil {
		return Report{}, err
	}

	return Report{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		DominantHz: DominantFrequency(mag, sampleRate),
		Stats:      Calculate(mag, sampleRate),
	}, nil
}

// DominantFrequency returns the frequency of the largest non-DC bin of a
// one-sided magnitude spectrum, refined by fitting a parabola through the
// log magnitudes of the peak and its neighbours. It returns 0 for spectra
// without energy above DC.
func DominantFrequency(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peak := 1
	for i := 2; i < n; i++ {
		if magnitude[i] > magnitude[peak] {
			peak = i
		}
	}
	if magnitude[peak] <= 0 {
		return 0
	}

	offset := 0.0
	if peak > 1 && peak < n-1 && magnitude[peak-1] > 0 && magnitude[peak+1] > 0 {
		a := math.Log(magnitude[peak-1])
		b := math.Log(magnitude[peak])
		c := math.Log(magnitude[peak+1])
		if d := a - 2*b + c; d < 0 {
			offset = 0.5 * (a - c) / d
		}
	}

	return (float64(peak) + offset) * sampleRate / float64(2*(n-1))
}
