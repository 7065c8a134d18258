package dither

import (
	"math"
	"math/rand/v2"
)

const (
	// FullScale is the integer magnitude of a normalized sample of 1.0.
	FullScale = math.MaxInt16

	limitLo = math.MinInt16
	limitHi = math.MaxInt16
)

// Quantizer rounds normalized samples to 16-bit integers with optional
// dither. It is not safe for concurrent use because it owns its random
// source.
type Quantizer struct {
	settings
}

// NewQuantizer creates a Quantizer. The default is plain rounding without
// dither.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	q := &Quantizer{settings{pdf: DitherNone, lsb: 1}}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&q.settings); err != nil {
			return nil, err
		}
	}

	if q.rng == nil && q.pdf != DitherNone {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return q, nil
}

// Quantize converts one sample. NaN maps to zero.
func (q *Quantizer) Quantize(input float64) int16 {
	if math.IsNaN(input) {
		return 0
	}

	scaled := max(-1, min(1, input)) * FullScale
	result := int(math.Round(scaled + q.noise()))

	return int16(max(limitLo, min(limitHi, result)))
}

// QuantizeInto converts src into dst and returns the number of converted
// samples, min(len(dst), len(src)).
func (q *Quantizer) QuantizeInto(dst []int, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int(q.Quantize(src[i]))
	}
	return n
}

// Dequantize converts a 16-bit integer back to a normalized sample in
// [-1, 1]. The extra negative code -32768 saturates to -1.
func Dequantize(v int) float64 {
	return max(-1, float64(v)/FullScale)
}

func (q *Quantizer) noise() float64 {
	switch q.pdf {
	case DitherRectangular:
		return q.lsb * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.lsb * (q.rng.Float64() - q.rng.Float64())
	case DitherGaussian:
		return q.lsb * 0.5 * q.rng.NormFloat64()
	default:
		return 0
	}
}

// DitherType returns the current dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.pdf }

// DitherAmplitude returns the current dither noise amplitude.
func (q *Quantizer) DitherAmplitude() float64 { return q.lsb }
