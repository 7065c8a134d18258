package resample

import (
	"fmt"
	"math"
)

// filterBank is a lowpass prototype split into up polyphase branches.
// It is immutable once designed and shared by every channel of a Fixed.
type filterBank struct {
	up, down int
	taps     []float64
	phases   [][]float64
	// longest branch; the streaming history keeps one sample less
	maxPhaseLn int
}

func designFilterBank(up, down int, cfg config) (*filterBank, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	nTaps := cfg.tapsPerPhase * up

	fc := 0.5 / float64(max(up, down)) * cfg.cutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, fmt.Errorf("%w: cutoff %.6f", ErrInvalidRatio, fc)
	}

	taps := make([]float64, nTaps)
	center := 0.5 * float64(nTaps-1)
	sum := 0.0
	for n := range taps {
		t := float64(n) - center
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiser(n, nTaps, cfg.kaiserBeta)
		sum += taps[n]
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: designed zero-sum filter", ErrInvalidRatio)
	}

	// Unity DC gain per output sample after zero-stuffing by up.
	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	fb := &filterBank{up: up, down: down, taps: taps, phases: make([][]float64, up)}
	for p := range up {
		branch := make([]float64, 0, (nTaps-p+up-1)/up)
		for i := p; i < nTaps; i += up {
			branch = append(branch, taps[i])
		}
		fb.maxPhaseLn = max(fb.maxPhaseLn, len(branch))
		fb.phases[p] = branch
	}

	return fb, nil
}

// approximateRatio returns the best continued-fraction approximation of v
// whose denominator does not exceed maxDen.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)
		p2, q2 := a*p1+p0, a*q1+q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num, den = int(math.Round(p1)), int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)
	return num / g, den / g
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	pix := math.Pi * x
	return math.Sin(pix) / pix
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its power
// series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	x2 := x * x / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
