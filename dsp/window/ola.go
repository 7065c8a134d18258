package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// OLAStats describes the steady-state sum of a window repeated every hop
// samples. A window/hop pair satisfies the overlap-add identity when Min
// equals Max.
type OLAStats struct {
	Hop  int
	Min  float64
	Max  float64
	Mean float64
	// RippledB is 20·log10(Max/Min); 0 for a flat sum, +Inf when the
	// windows leave gaps.
	RippledB float64
}

// Flat reports whether the overlap-add sum is constant within tol,
// relative to its mean.
func (s OLAStats) Flat(tol float64) bool {
	if s.Mean == 0 {
		return false
	}
	return (s.Max-s.Min)/s.Mean <= tol
}

// OverlapAdd sums coeffs shifted by multiples of hop and reports the
// resulting gain over one hop period, where every position is covered by
// the same number of windows.
func OverlapAdd(coeffs []float64, hop int) (OLAStats, error) {
	n := len(coeffs)
	if n == 0 {
		return OLAStats{}, validateLength(n)
	}
	if hop < 1 || hop > n {
		return OLAStats{}, fmt.Errorf("%w: hop=%d len=%d", ErrHop, hop, n)
	}

	stats := OLAStats{Hop: hop, Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0

	for i := range hop {
		g := 0.0
		for k := i; k < n; k += hop {
			g += coeffs[k]
		}

		stats.Min = math.Min(stats.Min, g)
		stats.Max = math.Max(stats.Max, g)
		sum += g
	}

	stats.Mean = sum / float64(hop)

	switch {
	case stats.Min <= 0:
		stats.RippledB = math.Inf(1)
	default:
		stats.RippledB = core.LinearToDB(stats.Max / stats.Min)
	}

	return stats, nil
}
