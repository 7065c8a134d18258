package signal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// Waveform selects the test signal Generator.Tone renders.
type Waveform int

const (
	// Sine is a single sine at the given frequency.
	Sine Waveform = iota
	// Chord is a major triad with its root at the given frequency.
	Chord
	// Sweep rises exponentially from the given frequency over two octaves.
	Sweep
	// Noise is uniform white noise; the frequency is ignored.
	Noise
)

var waveformNames = [...]string{"sine", "chord", "sweep", "noise"}

func (w Waveform) String() string {
	if w < Sine || w > Noise {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform resolves a name printed by Waveform.String.
func ParseWaveform(s string) (Waveform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range waveformNames {
		if s == name {
			return Waveform(i), nil
		}
	}
	return Sine, fmt.Errorf("signal: unknown waveform %q", s)
}

// majorTriad holds the chord intervals in semitones above the root.
var majorTriad = []float64{0, 4, 7}

// sweepOctaves is the span of a Sweep.
const sweepOctaves = 2

// Generator renders reproducible test signals at one sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the noise sequence.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator returns a Generator using the sample rate of opts.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions is NewGenerator with generator options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{cfg: core.ApplyProcessorOptions(coreOpts...), seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the rate signals are rendered at.
func (g *Generator) SampleRate() float64 { return g.cfg.SampleRate }

// Sine returns samples of a sine starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Multisine([]float64{freqHz}, amplitude, samples)
}

// Chord returns a major triad rooted at rootHz. The partials share the
// amplitude equally.
func (g *Generator) Chord(rootHz, amplitude float64, samples int) ([]float64, error) {
	freqs := make([]float64, len(majorTriad))
	for i, st := range majorTriad {
		freqs[i] = rootHz * core.SemitonesToRatio(st)
	}
	return g.Multisine(freqs, amplitude, samples)
}

// Multisine returns the sum of sines at freqsHz, each at
// amplitude/len(freqsHz), so the sum never exceeds amplitude.
func (g *Generator) Multisine(freqsHz []float64, amplitude float64, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	if len(freqsHz) == 0 {
		return nil, fmt.Errorf("signal: no frequencies")
	}
	nyquist := g.cfg.SampleRate / 2
	for _, f := range freqsHz {
		if !(f >= 0 && f <= nyquist) {
			return nil, fmt.Errorf("signal: frequency %v outside [0, %v]", f, nyquist)
		}
	}

	out := make([]float64, samples)
	amp := amplitude / float64(len(freqsHz))
	for _, f := range freqsHz {
		w := 2 * math.Pi * f / g.cfg.SampleRate
		for i := range out {
			out[i] += amp * math.Sin(w*float64(i))
		}
	}
	return out, nil
}

// LogSweep returns an exponential sine sweep from startHz to endHz over
// samples.
func (g *Generator) LogSweep(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	if !(startHz > 0 && endHz > 0) || startHz == endHz || endHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("signal: sweep %v -> %v Hz at %v Hz", startHz, endHz, g.cfg.SampleRate)
	}

	out := make([]float64, samples)
	span := float64(samples) / g.cfg.SampleRate
	k := math.Log(endHz / startHz)
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*startHz*span/k*(math.Exp(k*t/span)-1))
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude). Equal seeds
// give equal output.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out, nil
}

// Render returns samples of waveform w.
func (g *Generator) Render(w Waveform, freqHz, amplitude float64, samples int) ([]float64, error) {
	switch w {
	case Sine:
		return g.Sine(freqHz, amplitude, samples)
	case Chord:
		return g.Chord(freqHz, amplitude, samples)
	case Sweep:
		return g.LogSweep(freqHz, freqHz*math.Exp2(sweepOctaves), amplitude, samples)
	case Noise:
		return g.WhiteNoise(amplitude, samples)
	default:
		return nil, fmt.Errorf("signal: unknown waveform %v", w)
	}
}

// Tone renders d of waveform w on every channel.
func (g *Generator) Tone(w Waveform, freqHz, amplitude float64, d time.Duration, channels int) (core.Block, error) {
	if channels < 1 {
		return nil, fmt.Errorf("signal: channels must be >= 1: %d", channels)
	}
	if !(amplitude >= 0 && amplitude <= 1) {
		return nil, fmt.Errorf("signal: amplitude must be in [0, 1]: %v", amplitude)
	}

	mono, err := g.Render(w, freqHz, amplitude, int(math.Round(d.Seconds()*g.cfg.SampleRate)))
	if err != nil {
		return nil, err
	}

	b := make(core.Block, channels)
	for c := range b {
		b[c] = mono
		if c > 0 {
			b[c] = append([]float64(nil), mono...)
		}
	}
	return b, nil
}

func (g *Generator) check(samples int) error {
	if samples <= 0 {
		return fmt.Errorf("signal: sample count must be > 0: %d", samples)
	}
	if !core.IsFinitePositive(g.cfg.SampleRate) {
		return fmt.Errorf("signal: sample rate must be > 0: %v", g.cfg.SampleRate)
	}
	return nil
}
