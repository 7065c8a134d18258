// Package testutil holds reproducible test signals and tolerance checks
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRate)
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). The
// same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5851f42d4c957f2d))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	return slices.Repeat([]float64{value}, max(length, 0))
}

// NoiseBlock returns a block of deterministic noise with an independent
// sequence per channel.
func NoiseBlock(seed int64, amplitude float64, channels, frames int) core.Block {
	b := make(core.Block, channels)
	for c := range b {
		b[c] = DeterministicNoise(seed+int64(c)*7919, amplitude, frames)
	}
	return b
}

// SineBlock returns a block whose channels all carry the same sine.
func SineBlock(freqHz, sampleRate, amplitude float64, channels, frames int) core.Block {
	b := make(core.Block, channels)
	for c := range b {
		b[c] = DeterministicSine(freqHz, sampleRate, amplitude, frames)
	}
	return b
}
