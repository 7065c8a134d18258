package transpose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/timescale"
	timestats "github.com/cwbudde/algo-transpose/stats/time"
)

// Source yields audio frames. ReadFrames returns fewer than n frames only at
// the end of the stream.
type Source interface {
	ReadFrames(n int) (core.Block, error)
}

// Sink consumes audio frames. WriteFrames writes the first frames frames of
// b.
type Sink interface {
	WriteFrames(b core.Block, frames int) error
}

// Stats summarizes a finished conversion.
type Stats struct {
	Semitones     float64
	Ratio         float64
	SampleRate    int
	ConverterRate float64
	FramesIn      int
	FramesOut     int
	Output        timestats.Stats
	Elapsed       time.Duration
}

// Pipeline runs one pitch shift. It owns a TimeScale engine and a
// converter and is not safe for concurrent use; build one per job.
type Pipeline struct {
	cfg    Config
	spec   core.AudioSpec
	ratio  float64
	engine *timescale.Engine
	conv   Converter
	log    *slog.Logger

	out   timestats.StreamingStats
	stats Stats
	ran   bool
}

// New builds a Pipeline for a stream of format spec. Invalid semitones,
// framing or converter parameters fail with ErrConfiguration; an unusable
// spec fails with ErrFormat.
func New(spec core.AudioSpec, cfg Config) (*Pipeline, error) {
	if err := ValidateSemitones(cfg.Semitones); err != nil {
		return nil, err
	}
	if spec.Channels < 1 || spec.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrFormat, spec.Channels, spec.SampleRate)
	}
	cfg = cfg.withDefaults()

	ratio := Ratio(cfg.Semitones)

	opts := []timescale.Option{timescale.WithWindow(cfg.Window)}
	if cfg.FractionalHop {
		opts = append(opts, timescale.WithFractionalHop())
	}
	engine, err := timescale.New(cfg.ChunkSize, cfg.HopSize, ratio, spec.Channels, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	inRate := float64(spec.SampleRate)
	outRate := inRate / ratio
	conv, err := cfg.NewConverter(inRate, outRate, cfg.ChunkSize, spec.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: converter %v -> %v Hz: %w", ErrConfiguration, inRate, outRate, err)
	}

	return &Pipeline{
		cfg:    cfg,
		spec:   spec,
		ratio:  ratio,
		engine: engine,
		conv:   conv,
		log:    cfg.Logger,
		stats: Stats{
			Semitones:     cfg.Semitones,
			Ratio:         ratio,
			SampleRate:    spec.SampleRate,
			ConverterRate: outRate,
		},
	}, nil
}

// Ratio returns the frequency ratio of the shift.
func (p *Pipeline) Ratio() float64 { return p.ratio }

// Spec returns the stream format. The output has the same format.
func (p *Pipeline) Spec() core.AudioSpec { return p.spec }

// Run reads src to the end and writes the shifted stream to dst. Cancelling
// ctx stops the run between steps with ctx.Err(). A Pipeline runs once.
func (p *Pipeline) Run(ctx context.Context, src Source, dst Sink) (Stats, error) {
	if p.ran {
		return p.stats, fmt.Errorf("%w: pipeline already ran", ErrConfiguration)
	}
	p.ran = true
	start := time.Now()

	p.log.Debug("transpose start",
		slog.Float64("semitones", p.cfg.Semitones),
		slog.Float64("ratio", p.ratio),
		slog.Int("channels", p.spec.Channels),
		slog.Int("rate", p.spec.SampleRate),
		slog.Float64("converter_rate", p.stats.ConverterRate),
		slog.Int("chunk", p.cfg.ChunkSize),
		slog.Int("hop", p.cfg.HopSize),
		slog.Int("synthesis_hop", p.engine.SynthesisHop()))

	for !p.engine.Finished() {
		if err := ctx.Err(); err != nil {
			return p.finish(start), err
		}

		b, err := src.ReadFrames(p.cfg.ChunkSize)
		if err != nil {
			return p.finish(start), readError(err)
		}
		if err := p.engine.PushBlock(b); err != nil {
			return p.finish(start), fmt.Errorf("%w: %w", ErrFormat, err)
		}
		p.stats.FramesIn += b.Frames()

		if err := p.drain(ctx, dst); err != nil {
			return p.finish(start), err
		}
	}

	if !p.cfg.DropTail {
		if err := p.drainTail(dst); err != nil {
			return p.finish(start), err
		}
	}

	st := p.finish(start)
	p.log.Debug("transpose done",
		slog.Int("frames_in", st.FramesIn),
		slog.Int("frames_out", st.FramesOut),
		slog.Float64("peak", st.Output.Peak),
		slog.Int("clipped", st.Output.Clipped),
		slog.Duration("elapsed", st.Elapsed))

	return st, nil
}

// drain converts every block the engine can supply.
func (p *Pipeline) drain(ctx context.Context, dst Sink) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		in, out := p.conv.InputFramesNext(), p.conv.OutputFramesNext()
		b, ok := p.engine.PopFrames(in)
		if !ok {
			return nil
		}
		if err := p.convert(dst, b, out); err != nil {
			return err
		}
	}
}

// drainTail pads the final partial converter block with silence and writes
// the share of its output that corresponds to real input.
func (p *Pipeline) drainTail(dst Sink) error {
	rest := p.engine.Drain()
	if rest.Frames() == 0 {
		return nil
	}

	in, out := p.conv.InputFramesNext(), p.conv.OutputFramesNext()
	keep := int(math.Round(float64(rest.Frames()) * float64(out) / float64(in)))
	p.log.Debug("transpose tail", slog.Int("frames", rest.Frames()), slog.Int("keep", keep))

	return p.convert(dst, rest.ZeroPadded(in), keep)
}

func (p *Pipeline) convert(dst Sink, b core.Block, frames int) error {
	conv, err := p.conv.Process(b)
	if err != nil {
		return fmt.Errorf("%w: convert: %w", ErrConfiguration, err)
	}

	frames = min(frames, conv.Frames())
	if frames <= 0 {
		return nil
	}
	if err := dst.WriteFrames(conv, frames); err != nil {
		if errors.Is(err, ErrIO) {
			return err
		}
		return fmt.Errorf("%w: write: %w", ErrIO, err)
	}

	p.out.UpdateBlock(conv, frames)
	p.stats.FramesOut += frames

	return nil
}

func (p *Pipeline) finish(start time.Time) Stats {
	p.stats.Output = p.out.Result()
	p.stats.Elapsed = time.Since(start)
	return p.stats
}
