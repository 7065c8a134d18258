package timescale

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/buffer"
	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// weightFloor is the smallest accumulated window weight an output sample is
// divided by. Samples below it are emitted as silence.
const weightFloor = 1e-10

// Engine stretches a multi-channel stream by a constant factor using
// windowed overlap-add.
//
// Input is primed with blockSize-hop zeros so the first real sample is
// covered by as many windows as any other, and the matching stretch of
// output is dropped before anything is emitted. At end of stream the input
// is padded with one block of silence and the output is cut to the stretched
// input length.
type Engine struct {
	blockSize int
	hop       int
	synthHop  int
	factor    float64
	channels  int
	cfg       config

	win     []float64
	scratch []float64

	in   []*buffer.Queue
	out  []*buffer.Queue
	norm *buffer.Queue

	cursor   int // next analysis position in in
	steps    int // analysis windows processed
	base     int // absolute output index of the front of out
	boundary int // finalized samples at the front of out
	skip     int // leading output samples still to drop

	pushed   int
	popped   int
	finished bool
}

// New returns an Engine for the given framing. It requires
// blockSize > hop > 0, factor > 0, channels >= 1 and a synthesis hop of at
// least one sample.
func New(blockSize, hop int, factor float64, channels int, opts ...Option) (*Engine, error) {
	if hop <= 0 || blockSize <= hop {
		return nil, fmt.Errorf("%w: need blockSize > hop > 0, got blockSize=%d hop=%d",
			ErrInvalidConfig, blockSize, hop)
	}
	if !core.IsFinitePositive(factor) {
		return nil, fmt.Errorf("%w: factor must be finite and > 0: %v", ErrInvalidConfig, factor)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be >= 1: %d", ErrInvalidConfig, channels)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	synthHop := int(math.Floor(float64(hop) * factor))
	if synthHop < 1 {
		return nil, fmt.Errorf("%w: synthesis hop floor(%d*%v) is zero", ErrInvalidConfig, hop, factor)
	}

	e := &Engine{
		blockSize: blockSize,
		hop:       hop,
		synthHop:  synthHop,
		factor:    factor,
		channels:  channels,
		cfg:       cfg,
		win:       window.Generate(cfg.window, blockSize, window.WithPeriodic()),
		scratch:   make([]float64, blockSize),
		in:        make([]*buffer.Queue, channels),
		out:       make([]*buffer.Queue, channels),
		norm:      buffer.New(2 * blockSize),
	}

	prime := blockSize - hop
	for c := range channels {
		e.in[c] = buffer.New(2 * blockSize)
		e.in[c].ExtendTo(prime)
		e.out[c] = buffer.New(2 * blockSize)
	}

	if cfg.fractional {
		e.skip = int(math.Floor(float64(prime) * factor))
	} else {
		e.skip = prime * synthHop / hop
	}

	return e, nil
}

// PushBlock appends b to the input and runs every synthesis step the
// buffered input allows. A block shorter than BlockSize, including an empty
// one, ends the stream.
func (e *Engine) PushBlock(b core.Block) error {
	if e.finished {
		return ErrFinished
	}
	if err := b.Validate(e.channels); err != nil {
		return fmt.Errorf("%w: %w", ErrChannelMismatch, err)
	}

	for c := range e.channels {
		e.in[c].Append(b[c]...)
	}
	e.pushed += b.Frames()

	if b.Frames() < e.blockSize {
		e.finish()
		return nil
	}

	e.process()
	e.dropLatency()

	return nil
}

// Finish ends the stream without further input.
func (e *Engine) Finish() error {
	return e.PushBlock(core.NewBlock(e.channels, 0))
}

// PopFrames removes and returns the first n finalized frames. It reports
// false, without consuming anything, when fewer than n frames are final.
// After end of stream a false result means the output is exhausted.
func (e *Engine) PopFrames(n int) (core.Block, bool) {
	if n < 0 || n > e.boundary {
		return nil, false
	}

	b := core.NewBlock(e.channels, n)
	weights := e.norm.Samples()[:n]
	for c := range e.channels {
		src := e.out[c].Samples()[:n]
		if e.cfg.raw {
			copy(b[c], src)
			continue
		}
		for i, w := range weights {
			if w > weightFloor {
				b[c][i] = src[i] / w
			}
		}
	}

	e.discardOutput(n)
	e.popped += n

	return b, true
}

// PopBlock pops BlockSize frames.
func (e *Engine) PopBlock() (core.Block, bool) {
	return e.PopFrames(e.blockSize)
}

// Drain pops every finalized frame. The result may have zero frames.
func (e *Engine) Drain() core.Block {
	b, _ := e.PopFrames(e.boundary)
	return b
}

// Boundary returns the number of finalized frames ready to pop.
func (e *Engine) Boundary() int { return e.boundary }

// InputPending returns the number of buffered input frames not yet passed by
// the analysis cursor, including the leading pad.
func (e *Engine) InputPending() int { return e.in[0].Len() - e.cursor }

// Finished reports whether end of stream has been pushed.
func (e *Engine) Finished() bool { return e.finished }

// Pushed returns the number of input frames pushed so far.
func (e *Engine) Pushed() int { return e.pushed }

// Popped returns the number of output frames popped so far.
func (e *Engine) Popped() int { return e.popped }

// BlockSize returns the analysis window length.
func (e *Engine) BlockSize() int { return e.blockSize }

// Hop returns the analysis hop.
func (e *Engine) Hop() int { return e.hop }

// SynthesisHop returns floor(hop·factor).
func (e *Engine) SynthesisHop() int { return e.synthHop }

// Factor returns the requested scaling factor.
func (e *Engine) Factor() float64 { return e.factor }

// Channels returns the channel count.
func (e *Engine) Channels() int { return e.channels }

// EffectiveFactor is the ratio of output to input length the engine
// actually produces: synthHop/hop, or the exact factor with a fractional hop.
func (e *Engine) EffectiveFactor() float64 {
	if e.cfg.fractional {
		return e.factor
	}
	return float64(e.synthHop) / float64(e.hop)
}

// position returns the absolute output index of analysis window k.
func (e *Engine) position(k int) int {
	if e.cfg.fractional {
		return int(math.Floor(float64(k) * float64(e.hop) * e.factor))
	}
	return k * e.synthHop
}

func (e *Engine) process() {
	n := e.blockSize
	for e.in[0].Len()-e.cursor >= n {
		pos := e.position(e.steps) - e.base
		e.extendOutput(pos + n)

		for c := range e.channels {
			src := e.in[c].Samples()[e.cursor : e.cursor+n]
			vecmath.MulBlock(e.scratch, src, e.win)
			vecmath.AddBlockInPlace(e.out[c].Samples()[pos:pos+n], e.scratch)
		}
		vecmath.AddBlockInPlace(e.norm.Samples()[pos:pos+n], e.win)

		e.cursor += e.hop
		e.steps++
	}

	e.boundary = e.position(e.steps) - e.base
	// Synthesis hops longer than the window leave silent gaps.
	e.extendOutput(e.boundary)

	for c := range e.channels {
		e.in[c].Discard(e.cursor)
	}
	e.cursor = 0
}

func (e *Engine) finish() {
	e.finished = true
	for c := range e.channels {
		e.in[c].ExtendTo(e.in[c].Len() + e.blockSize)
	}
	e.process()

	// No further windows will be added, so every accumulated sample is final.
	e.boundary = e.norm.Len()
	e.dropLatency()

	target := int(math.Round(float64(e.pushed)*e.EffectiveFactor())) - e.popped
	if target < 0 {
		target = 0
	}
	e.extendOutput(target)
	for c := range e.channels {
		e.out[c].Truncate(target)
	}
	e.norm.Truncate(target)
	e.boundary = target
}

func (e *Engine) dropLatency() {
	d := min(e.skip, e.boundary)
	if d <= 0 {
		return
	}
	e.discardOutput(d)
	e.skip -= d
}

func (e *Engine) discardOutput(n int) {
	for c := range e.channels {
		e.out[c].Discard(n)
	}
	e.norm.Discard(n)
	e.boundary -= n
	e.base += n
}

func (e *Engine) extendOutput(n int) {
	for c := range e.channels {
		e.out[c].ExtendTo(n)
	}
	e.norm.ExtendTo(n)
}
