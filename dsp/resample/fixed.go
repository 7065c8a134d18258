package resample

import (
	"fmt"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// Fixed is a multi-channel converter that consumes input in blocks of a
// fixed size. All channels share one filter design and advance in lockstep.
type Fixed struct {
	blockSize int
	inRate    float64
	outRate   float64
	chans     []*Resampler
}

// NewFixed returns a converter from inRate to outRate that accepts exactly
// blockSize frames of channels channels per Process call.
func NewFixed(inRate, outRate float64, blockSize, channels int, opts ...Option) (*Fixed, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidBlock, blockSize)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be >= 1: %d", ErrInvalidBlock, channels)
	}

	cfg := newConfig(opts)
	up, down, err := ratioForRates(inRate, outRate, cfg.maxDen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v -> %v", err, inRate, outRate)
	}

	f := &Fixed{
		blockSize: blockSize,
		inRate:    inRate,
		outRate:   outRate,
		chans:     make([]*Resampler, channels),
	}

	if up == down {
		for c := range f.chans {
			f.chans[c] = &Resampler{up: 1, down: 1, quality: cfg.quality}
		}
		return f, nil
	}

	fb, err := designFilterBank(up, down, cfg)
	if err != nil {
		return nil, err
	}
	for c := range f.chans {
		f.chans[c] = newFromBank(fb, cfg.quality)
	}

	return f, nil
}

// InputFramesNext returns the number of frames the next Process call needs.
// It is always the block size.
func (f *Fixed) InputFramesNext() int { return f.blockSize }

// OutputFramesNext returns the number of frames the next Process call
// produces.
func (f *Fixed) OutputFramesNext() int {
	return f.chans[0].PredictOutputLen(f.blockSize)
}

// Process converts exactly one block. It fails with ErrInvalidBlock when b
// does not have the converter's channel count and block size.
func (f *Fixed) Process(b core.Block) (core.Block, error) {
	if err := b.Validate(len(f.chans)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBlock, err)
	}
	if b.Frames() != f.blockSize {
		return nil, fmt.Errorf("%w: got %d frames, want %d", ErrInvalidBlock, b.Frames(), f.blockSize)
	}

	out := make(core.Block, len(f.chans))
	for c, r := range f.chans {
		out[c] = r.Process(b[c])
	}
	return out, nil
}

// Ratio returns the reduced up/down factors used for the conversion.
func (f *Fixed) Ratio() (up, down int) { return f.chans[0].Ratio() }

// Rates returns the nominal input and output sample rates.
func (f *Fixed) Rates() (in, out float64) { return f.inRate, f.outRate }

// BlockSize returns the fixed input block size.
func (f *Fixed) BlockSize() int { return f.blockSize }

// Channels returns the channel count.
func (f *Fixed) Channels() int { return len(f.chans) }

// Reset clears the streaming state of every channel.
func (f *Fixed) Reset() {
	for _, r := range f.chans {
		r.Reset()
	}
}
