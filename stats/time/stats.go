package time

import (
	"math"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// ClipLevel is the absolute sample value at or above which a sample counts
// as clipped.
const ClipLevel = 1.0

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max |x|
	PeakdB        float64
	CrestFactor   float64 // peak / RMS (linear), 0 for silence
	ZeroCrossings int
	Clipped       int // samples with |x| >= ClipLevel
}

// Calculate computes all statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats
	s.Update(signal)
	return s.Result()
}

// RMS returns the root-mean-square level of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns max |x|.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// StreamingStats accumulates statistics across blocks. The zero value is
// ready to use.
type StreamingStats struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	zeroCrossings int
	clipped       int
	last          float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		if s.n > 0 && s.last*x < 0 {
			s.zeroCrossings++
		}
		s.n++
		s.sum += x
		s.sumSq += x * x

		a := math.Abs(x)
		s.peak = math.Max(s.peak, a)
		if a >= ClipLevel {
			s.clipped++
		}
		s.last = x
	}
}

// UpdateBlock adds frames of every channel of b. Zero crossings are counted
// on the concatenation, so use one StreamingStats per channel when crossings
// matter.
func (s *StreamingStats) UpdateBlock(b core.Block, frames int) {
	for _, ch := range b {
		s.Update(ch[:min(frames, len(ch))])
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1)}
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)

	st := Stats{
		Length:        s.n,
		DC:            s.sum / nf,
		RMS:           rms,
		RMSdB:         core.LinearToDB(rms),
		Peak:          s.peak,
		PeakdB:        core.LinearToDB(s.peak),
		ZeroCrossings: s.zeroCrossings,
		Clipped:       s.clipped,
	}
	if rms > 0 {
		st.CrestFactor = s.peak / rms
	}
	return st
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
