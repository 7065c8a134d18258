package wavio

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/dither"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type encoderConfig struct {
	quantOpts []dither.Option
}

// EncoderOption configures an [Encoder].
type EncoderOption func(*encoderConfig)

// WithDither adds dither noise of type t before rounding.
func WithDither(t dither.DitherType) EncoderOption {
	return func(cfg *encoderConfig) {
		cfg.quantOpts = append(cfg.quantOpts, dither.WithDitherType(t))
	}
}

// WithQuantizerOptions passes raw options to the output quantizer.
func WithQuantizerOptions(opts ...dither.Option) EncoderOption {
	return func(cfg *encoderConfig) {
		cfg.quantOpts = append(cfg.quantOpts, opts...)
	}
}

// Encoder writes normalized frames as 16-bit PCM WAV. The header sizes are
// patched on Close, so the destination must be seekable.
type Encoder struct {
	enc     *wav.Encoder
	spec    core.AudioSpec
	quant   *dither.Quantizer
	buf     *audio.IntBuffer
	written int
	closed  bool
}

// NewEncoder returns an Encoder for spec. The bit depth of spec is ignored;
// output is always 16-bit.
func NewEncoder(w io.WriteSeeker, spec core.AudioSpec, opts ...EncoderOption) (*Encoder, error) {
	spec.BitDepth = core.OutputBitDepth
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var cfg encoderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	quant, err := dither.NewQuantizer(cfg.quantOpts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		enc:   wav.NewEncoder(w, spec.SampleRate, spec.BitDepth, spec.Channels, formatPCM),
		spec:  spec,
		quant: quant,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: spec.Channels, SampleRate: spec.SampleRate},
			SourceBitDepth: spec.BitDepth,
		},
	}, nil
}

// Spec returns the output format.
func (e *Encoder) Spec() core.AudioSpec { return e.spec }

// FramesWritten returns the number of frames written so far.
func (e *Encoder) FramesWritten() int { return e.written }

// WriteFrames quantizes and writes the first frames frames of b.
func (e *Encoder) WriteFrames(b core.Block, frames int) error {
	if e.closed {
		return ErrClosed
	}
	if err := b.Validate(e.spec.Channels); err != nil {
		return err
	}
	if frames < 0 || frames > b.Frames() {
		return fmt.Errorf("%w: write %d of %d frames", core.ErrBlockShape, frames, b.Frames())
	}

	ch := e.spec.Channels
	want := frames * ch
	if cap(e.buf.Data) < want {
		e.buf.Data = make([]int, want)
	}
	e.buf.Data = e.buf.Data[:want]
	for i := range frames {
		for c := range ch {
			e.buf.Data[i*ch+c] = int(e.quant.Quantize(b[c][i]))
		}
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("wavio: write pcm: %w", err)
	}
	e.written += frames

	return nil
}

// Close patches the RIFF and data chunk sizes. It does not close the
// underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	// The header is emitted lazily by the first write.
	if e.written == 0 {
		e.buf.Data = e.buf.Data[:0]
		if err := e.enc.Write(e.buf); err != nil {
			return fmt.Errorf("wavio: write header: %w", err)
		}
	}
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize header: %w", err)
	}
	return nil
}
