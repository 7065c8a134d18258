package frequency

import "math"

// RolloffFraction is the share of spectral energy below Stats.Rolloff.
const RolloffFraction = 0.85

// Stats describes a one-sided magnitude spectrum (linear, bins 0..Nyquist).
type Stats struct {
	Bins    int
	Peak    float64
	PeakBin int
	Energy  float64 // sum of squared magnitudes

	Centroid float64 // Hz, magnitude-weighted mean frequency
	Flatness float64 // geometric over arithmetic mean above DC, 0..1
	Rolloff  float64 // Hz below which RolloffFraction of the energy lies
}

// Calculate describes magnitude, whose bin i sits at
// i·sampleRate/(2·(len(magnitude)−1)) Hz.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{}
	}

	s := Stats{Bins: n, Peak: magnitude[0]}
	var sum, weighted float64
	for i, v := range magnitude {
		if v > s.Peak {
			s.Peak, s.PeakBin = v, i
		}
		sum += v
		weighted += float64(i) * v
		s.Energy += v * v
	}
	if n == 1 {
		return s
	}

	hz := sampleRate / float64(2*(n-1))
	if sum > 0 {
		s.Centroid = hz * weighted / sum
	}
	s.Flatness = Flatness(magnitude)

	if s.Energy > 0 {
		acc := 0.0
		for i, v := range magnitude {
			acc += v * v
			if acc >= RolloffFraction*s.Energy {
				s.Rolloff = hz * float64(i)
				break
			}
		}
	}

	return s
}

// Flatness returns the spectral flatness of the bins above DC: 1 for a
// white spectrum, 0 when any bin is empty.
func Flatness(magnitude []float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	bins := magnitude[1:]
	var lin, logs float64
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		lin += v
		logs += math.Log(v)
	}

	n := float64(len(bins))
	return math.Exp(logs/n) / (lin / n)
}
