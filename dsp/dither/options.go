package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// settings is what the options build; a Quantizer keeps it for its lifetime.
type settings struct {
	pdf DitherType
	lsb float64 // noise amplitude in least significant bits
	rng *rand.Rand
}

// Option configures a [Quantizer]. Options are applied in order and the
// first invalid one aborts NewQuantizer.
type Option func(*settings) error

// WithDitherType selects the noise PDF. The default is [DitherNone].
func WithDitherType(dt DitherType) Option {
	return func(s *settings) error {
		if !dt.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", dt)
		}
		s.pdf = dt
		return nil
	}
}

// WithDitherAmplitude scales the noise, in LSB. The default is 1 and the
// value must be finite and >= 0.
func WithDitherAmplitude(lsb float64) Option {
	return func(s *settings) error {
		if !(lsb >= 0) || math.IsInf(lsb, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %v", lsb)
		}
		s.lsb = lsb
		return nil
	}
}

// WithRNG draws the noise from rng, for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(s *settings) error {
		s.rng = rng
		return nil
	}
}

// WithSeed is WithRNG with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRNG(rand.New(rand.NewPCG(seed, 0)))
}
