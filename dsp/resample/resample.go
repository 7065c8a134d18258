package resample

import (
	"errors"
	"math"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrInvalidBlock indicates a block size or block shape the converter
	// cannot accept.
	ErrInvalidBlock = errors.New("resample: invalid block")
)

// Resampler performs streaming rational sample-rate conversion of a single
// channel.
type Resampler struct {
	fb      *filterBank // nil for a 1:1 ratio
	up      int
	down    int
	quality Quality

	phase      int
	inputIndex int
	totalIn    int
	history    []float64
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := newConfig(opts)
	if up == down {
		return &Resampler{up: 1, down: 1, quality: cfg.quality}, nil
	}

	fb, err := designFilterBank(up, down, cfg)
	if err != nil {
		return nil, err
	}

	return newFromBank(fb, cfg.quality), nil
}

// NewForRates creates a resampler by approximating outRate/inRate as a ratio.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	up, down, err := ratioForRates(inRate, outRate, newConfig(opts).maxDen)
	if err != nil {
		return nil, err
	}
	return NewRational(up, down, opts...)
}

// Resample converts input using ratio up/down as a one-shot helper.
func Resample(input []float64, up, down int, opts ...Option) ([]float64, error) {
	r, err := NewRational(up, down, opts...)
	if err != nil {
		return nil, err
	}
	return r.Process(input), nil
}

func ratioForRates(inRate, outRate float64, maxDen int) (up, down int, err error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) ||
		math.IsInf(inRate, 0) || math.IsInf(outRate, 0) {
		return 0, 0, ErrInvalidRate
	}
	up, down = approximateRatio(outRate/inRate, maxDen)
	return up, down, nil
}

func newFromBank(fb *filterBank, q Quality) *Resampler {
	return &Resampler{
		fb:      fb,
		up:      fb.up,
		down:    fb.down,
		quality: q,
		history: make([]float64, 0, max(0, fb.maxPhaseLn-1)),
	}
}

// Reset clears internal filter state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.inputIndex = 0
	r.totalIn = 0
	r.history = r.history[:0]
}

// Process converts an input block and preserves internal state for streaming.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}
	if r.fb == nil {
		out := make([]float64, len(input))
		copy(out, input)
		r.totalIn += len(input)
		return out
	}

	out := make([]float64, 0, r.PredictOutputLen(len(input)))

	work := make([]float64, len(r.history)+len(input))
	copy(work, r.history)
	copy(work[len(r.history):], input)

	baseIndex := r.totalIn - len(r.history)
	lastAvail := r.totalIn + len(input) - 1

	for r.inputIndex <= lastAvail {
		var y float64
		for k, c := range r.fb.phases[r.phase] {
			idx := r.inputIndex - k
			if idx < baseIndex {
				break
			}
			y += c * work[idx-baseIndex]
		}
		out = append(out, y)

		r.phase += r.down
		r.inputIndex += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)

	keep := min(max(0, r.fb.maxPhaseLn-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)

	return out
}

// PredictOutputLen returns the number of samples the next Process call
// produces for inputLen samples.
func (r *Resampler) PredictOutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}
	if r.fb == nil {
		return inputLen
	}

	lastAvail := r.totalIn + inputLen - 1
	i, phase := r.inputIndex, r.phase

	count := 0
	for i <= lastAvail {
		count++
		phase += r.down
		i += phase / r.up
		phase %= r.up
	}

	return count
}

// Ratio returns reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// TapsPerPhase returns taps in each polyphase branch for phase 0, or 0 for a
// 1:1 passthrough.
func (r *Resampler) TapsPerPhase() int {
	if r.fb == nil {
		return 0
	}
	return len(r.fb.phases[0])
}
