package signal

import (
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/spectrum"
	"github.com/cwbudde/algo-transpose/internal/testutil"
	"github.com/cwbudde/algo-transpose/stats/frequency"
)

func TestSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 0.5, 48)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, s, testutil.DeterministicSine(1000, 48000, 0.5, 48), 1e-12)
}

func TestChordPartials(t *testing.T) {
	const rate = 48000
	g := NewGenerator(core.WithSampleRate(rate))
	x, err := g.Chord(440, 0.9, rate)
	if err != nil {
		t.Fatalf("Chord() error = %v", err)
	}

	for _, st := range majorTriad {
		hz := 440 * core.SemitonesToRatio(st)
		level, err := spectrum.ToneLevel(x, hz, rate)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(level-0.3/math.Sqrt2) > 0.01 {
			t.Fatalf("partial %.1f Hz level = %v, want %v", hz, level, 0.3/math.Sqrt2)
		}
	}
	for i, v := range x {
		if math.Abs(v) > 0.9 {
			t.Fatalf("x[%d] = %v exceeds amplitude", i, v)
		}
	}
}

func TestLogSweepEnds(t *testing.T) {
	const rate = 8000
	g := NewGenerator(core.WithSampleRate(rate))
	x, err := g.LogSweep(100, 400, 1, rate)
	if err != nil {
		t.Fatalf("LogSweep() error = %v", err)
	}
	if len(x) != rate || x[0] != 0 {
		t.Fatalf("len=%d x[0]=%v", len(x), x[0])
	}

	// The first tenth stays near the start, the last tenth near the end.
	head, err := frequency.Analyze(x[:rate/10], rate)
	if err != nil {
		t.Fatal(err)
	}
	tail, err := frequency.Analyze(x[rate-rate/10:], rate)
	if err != nil {
		t.Fatal(err)
	}
	if head.DominantHz > 150 || tail.DominantHz < 300 {
		t.Fatalf("head %.0f Hz, tail %.0f Hz", head.DominantHz, tail.DominantHz)
	}
}

func TestWhiteNoiseSeed(t *testing.T) {
	a, err := NewGeneratorWithOptions(nil, WithSeed(42)).WhiteNoise(0.5, 64)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	b, _ := NewGeneratorWithOptions(nil, WithSeed(42)).WhiteNoise(0.5, 64)
	c, _ := NewGeneratorWithOptions(nil, WithSeed(43)).WhiteNoise(0.5, 64)

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
	same := true
	for i := range a {
		if a[i] < -0.5 || a[i] >= 0.5 {
			t.Fatalf("a[%d] = %v outside [-0.5, 0.5)", i, a[i])
		}
		same = same && a[i] == c[i]
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRejects(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))

	if _, err := g.Multisine([]float64{1000, 5000}, 1, 16); err == nil {
		t.Fatal("frequency above Nyquist accepted")
	}
	if _, err := g.Multisine(nil, 1, 16); err == nil {
		t.Fatal("empty frequency list accepted")
	}
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("zero samples accepted")
	}
	if _, err := g.LogSweep(1000, 8000, 1, 16); err == nil {
		t.Fatal("sweep past Nyquist accepted")
	}
	if _, err := g.Render(Waveform(9), 440, 1, 16); err == nil {
		t.Fatal("unknown waveform accepted")
	}
}

func TestTone(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(44100))

	for _, w := range []Waveform{Sine, Chord, Sweep, Noise} {
		t.Run(w.String(), func(t *testing.T) {
			b, err := g.Tone(w, 440, 0.5, 250*time.Millisecond, 2)
			if err != nil {
				t.Fatalf("Tone() error = %v", err)
			}
			if b.Channels() != 2 || b.Frames() != 11025 {
				t.Fatalf("got %dx%d block, want 2x11025", b.Channels(), b.Frames())
			}
			testutil.RequireSliceNearlyEqual(t, b[1], b[0], 0)

			b[1][0] = 7
			if b[0][0] == 7 {
				t.Fatal("channels share storage")
			}
		})
	}

	if _, err := g.Tone(Sine, 440, 1.5, time.Second, 1); err == nil {
		t.Fatal("amplitude above 1 accepted")
	}
	if _, err := g.Tone(Sine, 440, 0.5, time.Second, 0); err == nil {
		t.Fatal("zero channels accepted")
	}
}

func TestParseWaveform(t *testing.T) {
	for _, w := range []Waveform{Sine, Chord, Sweep, Noise} {
		got, err := ParseWaveform(" " + w.String() + " ")
		if err != nil || got != w {
			t.Fatalf("ParseWaveform(%q) = %v, %v", w.String(), got, err)
		}
	}
	if _, err := ParseWaveform("square"); err == nil {
		t.Fatal("unknown name accepted")
	}
	if s := Waveform(-1).String(); s != "Waveform(-1)" {
		t.Fatalf("String() = %q", s)
	}
}
