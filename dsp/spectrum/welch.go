package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-transpose/dsp/window"
)

// ErrFFTSize is returned for FFT sizes that are not a power of two >= 2.
var ErrFFTSize = errors.New("spectrum: fft size must be a power of two >= 2")

// Welch returns the one-sided magnitude spectrum of samples averaged over
// Hann-windowed segments of fftSize samples at 50% overlap. The result has
// fftSize/2+1 bins; bin k is at k·sampleRate/fftSize. Input shorter than one
// segment is zero-padded.
func Welch(samples []float64, fftSize int) ([]float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	win := window.Generate(window.TypeHann, fftSize, window.WithPeriodic())
	seg := make([]float64, fftSize)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	mag := make([]float64, fftSize/2+1)
	acc := make([]float64, fftSize/2+1)
	var planes split

	hop := fftSize / 2
	segments := 0
	for start := 0; start == 0 || start+fftSize <= len(samples); start += hop {
		clear(seg)
		copy(seg, samples[start:min(len(samples), start+fftSize)])
		vecmath.MulBlockInPlace(seg, win)
		for i, v := range seg {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("spectrum: fft: %w", err)
		}

		planes.magnitude(mag, out[:len(mag)])
		vecmath.AddBlockInPlace(acc, mag)
		segments++
	}

	vecmath.ScaleBlock(acc, acc, 1/float64(segments))

	return acc, nil
}

// NextPowerOfTwo returns the smallest power of two >= n, or 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
