package timescale

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/window"
	"github.com/cwbudde/algo-transpose/internal/testutil"
)

// stretch pushes src in blockSize chunks and drains the engine after every
// push, returning everything it produced.
func stretch(t *testing.T, e *Engine, src core.Block) core.Block {
	t.Helper()

	out := core.NewBlock(e.Channels(), 0)
	for _, chunk := range testutil.Chunks(src, e.BlockSize()) {
		if err := e.PushBlock(chunk); err != nil {
			t.Fatalf("PushBlock: %v", err)
		}
		out = testutil.Concat(e.Channels(), out, e.Drain())
	}

	if !e.Finished() {
		t.Fatal("engine should be finished after a short block")
	}
	if _, ok := e.PopFrames(1); ok {
		t.Fatal("PopFrames should report no output after draining a finished engine")
	}

	return out
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		blockSize int
		hop       int
		factor    float64
		channels  int
	}{
		{name: "zero hop", blockSize: 4096, hop: 0, factor: 1, channels: 1},
		{name: "hop equals block", blockSize: 2048, hop: 2048, factor: 1, channels: 1},
		{name: "hop exceeds block", blockSize: 1024, hop: 2048, factor: 1, channels: 1},
		{name: "zero factor", blockSize: 4096, hop: 2048, factor: 0, channels: 1},
		{name: "negative factor", blockSize: 4096, hop: 2048, factor: -1, channels: 1},
		{name: "nan factor", blockSize: 4096, hop: 2048, factor: math.NaN(), channels: 1},
		{name: "inf factor", blockSize: 4096, hop: 2048, factor: math.Inf(1), channels: 1},
		{name: "no channels", blockSize: 4096, hop: 2048, factor: 1, channels: 0},
		{name: "vanishing synthesis hop", blockSize: 8, hop: 4, factor: 0.1, channels: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.blockSize, tt.hop, tt.factor, tt.channels)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	e, err := New(4096, 2048, 1.2, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if e.BlockSize() != 4096 || e.Hop() != 2048 || e.Channels() != 2 {
		t.Fatalf("unexpected framing: block=%d hop=%d ch=%d", e.BlockSize(), e.Hop(), e.Channels())
	}
	if e.SynthesisHop() != 2457 {
		t.Fatalf("SynthesisHop() = %d, want 2457", e.SynthesisHop())
	}
	if e.Factor() != 1.2 {
		t.Fatalf("Factor() = %v, want 1.2", e.Factor())
	}
	if got, want := e.EffectiveFactor(), 2457.0/2048.0; got != want {
		t.Fatalf("EffectiveFactor() = %v, want %v", got, want)
	}
	if e.InputPending() != 2048 {
		t.Fatalf("InputPending() = %d, want the 2048-frame pad", e.InputPending())
	}
	if e.Boundary() != 0 || e.Finished() {
		t.Fatal("new engine should have no output and not be finished")
	}
}

func TestIdentityStretch(t *testing.T) {
	for _, channels := range []int{1, 2, 5} {
		for _, raw := range []bool{false, true} {
			var opts []Option
			if raw {
				opts = append(opts, WithRawOverlapAdd())
			}

			e, err := New(1024, 512, 1, channels, opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			src := testutil.NoiseBlock(42, 0.9, channels, 5000)
			got := stretch(t, e, src)

			if got.Frames() != src.Frames() {
				t.Fatalf("channels=%d raw=%v: got %d frames, want %d",
					channels, raw, got.Frames(), src.Frames())
			}
			testutil.RequireBlockNearlyEqual(t, got, src, 1e-12)
		}
	}
}

func TestIdentityStretchWholeBlocks(t *testing.T) {
	e, err := New(4096, 2048, 1, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	src := testutil.NoiseBlock(7, 1, 2, 3*4096)
	got := stretch(t, e, src)
	testutil.RequireBlockNearlyEqual(t, got, src, 1e-12)
}

func TestConstantGain(t *testing.T) {
	for _, raw := range []bool{false, true} {
		var opts []Option
		if raw {
			opts = append(opts, WithRawOverlapAdd())
		}

		e, err := New(4096, 2048, 1, 1, opts...)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		src := core.Block{testutil.DC(0.5, 4*4096+100)}
		got := stretch(t, e, src)

		for i, v := range got[0] {
			if math.Abs(v-0.5) > 1e-12 {
				t.Fatalf("raw=%v: sample %d = %v, want 0.5", raw, i, v)
			}
		}
	}
}

func TestWeightedGainForNonOLAWindows(t *testing.T) {
	// A Blackman window at 50% overlap ripples, and so does any window
	// once the synthesis hop differs from the analysis hop. Weighting
	// removes both.
	for _, factor := range []float64{1, 0.75, 1.5} {
		e, err := New(1024, 512, factor, 1, WithWindow(window.TypeBlackman))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		src := core.Block{testutil.DC(-0.25, 6000)}
		got := stretch(t, e, src)

		// Away from the ends, where windows reach into the padding.
		interior := got[0][1024 : got.Frames()-1024]
		for i, v := range interior {
			if math.Abs(v+0.25) > 1e-9 {
				t.Fatalf("factor=%v: sample %d = %v, want -0.25", factor, i, v)
			}
		}
	}
}

func TestRawGainRipplesForNonOLAWindow(t *testing.T) {
	e, err := New(1024, 512, 1, 1, WithWindow(window.TypeBlackman), WithRawOverlapAdd())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := stretch(t, e, core.Block{testutil.DC(1, 4096)})

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range got[0] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 0.1 {
		t.Fatalf("expected visible ripple, got range [%v, %v]", lo, hi)
	}
}

func TestPopFramesBoundary(t *testing.T) {
	e, err := New(1024, 512, 1.3, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := e.PopFrames(1); ok {
		t.Fatal("PopFrames(1) on an empty engine should not be ready")
	}

	src := testutil.NoiseBlock(3, 0.5, 2, 4096)
	if err := e.PushBlock(src); err != nil {
		t.Fatalf("PushBlock: %v", err)
	}

	boundary := e.Boundary()
	if boundary == 0 {
		t.Fatal("expected finalized output after a full push")
	}

	if _, ok := e.PopFrames(boundary + 1); ok {
		t.Fatal("PopFrames beyond the boundary should not be ready")
	}
	if e.Boundary() != boundary {
		t.Fatal("a refused PopFrames must not consume output")
	}

	b, ok := e.PopFrames(boundary / 2)
	if !ok {
		t.Fatal("PopFrames within the boundary should be ready")
	}
	if b.Channels() != 2 || b.Frames() != boundary/2 {
		t.Fatalf("got %dx%d block, want 2x%d", b.Channels(), b.Frames(), boundary/2)
	}
	if e.Boundary() != boundary-boundary/2 {
		t.Fatalf("Boundary() = %d, want %d", e.Boundary(), boundary-boundary/2)
	}

	if _, ok := e.PopFrames(-1); ok {
		t.Fatal("negative frame counts should not be ready")
	}
	if b, ok := e.PopFrames(0); !ok || b.Frames() != 0 {
		t.Fatal("PopFrames(0) should return an empty block")
	}
}

func TestPopBlock(t *testing.T) {
	e, err := New(512, 256, 2, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.PushBlock(core.Block{testutil.DC(1, 2048)}); err != nil {
		t.Fatalf("PushBlock: %v", err)
	}

	count := 0
	for {
		b, ok := e.PopBlock()
		if !ok {
			break
		}
		if b.Frames() != 512 {
			t.Fatalf("PopBlock returned %d frames", b.Frames())
		}
		count++
	}
	if count == 0 {
		t.Fatal("expected at least one block")
	}
	if e.Boundary() >= 512 {
		t.Fatalf("Boundary() = %d after exhausting PopBlock", e.Boundary())
	}
}

func TestOutputLengthScaling(t *testing.T) {
	const (
		blockSize = 4096
		hop       = 2048
		frames    = 4 * blockSize
	)

	for _, factor := range []float64{0.5, 0.75, 1, 1.2, 1.5, 2} {
		for _, fractional := range []bool{false, true} {
			var opts []Option
			if fractional {
				opts = append(opts, WithFractionalHop())
			}

			e, err := New(blockSize, hop, factor, 1, opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got := stretch(t, e, testutil.NoiseBlock(11, 0.5, 1, frames))
			want := float64(frames) * factor
			if math.Abs(float64(got.Frames())-want) > hop {
				t.Fatalf("factor=%v fractional=%v: got %d frames, want %v within one hop",
					factor, fractional, got.Frames(), want)
			}
			if e.Popped() != got.Frames() || e.Pushed() != frames {
				t.Fatalf("counters: pushed=%d popped=%d", e.Pushed(), e.Popped())
			}
			testutil.RequireFinite(t, got[0])
		}
	}
}

func TestFractionalHopRemovesDrift(t *testing.T) {
	const frames = 40 * 1024
	factor := math.Pow(2, 1.0/12)

	truncating, err := New(1024, 512, factor, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	fractional, err := New(1024, 512, factor, 1, WithFractionalHop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	src := testutil.NoiseBlock(1, 0.5, 1, frames)
	a := stretch(t, truncating, src).Frames()
	b := stretch(t, fractional, src).Frames()

	want := int(math.Round(frames * factor))
	if b != want {
		t.Fatalf("fractional hop produced %d frames, want %d", b, want)
	}
	if a >= b {
		t.Fatalf("truncating hop should drift short: truncating=%d fractional=%d", a, b)
	}
}

func TestStereoScenarioBoundary(t *testing.T) {
	e, err := New(4096, 2048, 1.5, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	src := testutil.NoiseBlock(9, 0.5, 2, 8192)
	for _, chunk := range testutil.Chunks(src, 4096)[:2] {
		if err := e.PushBlock(chunk); err != nil {
			t.Fatalf("PushBlock: %v", err)
		}
	}

	// Three complete hops fit in 8192 frames.
	want := int(math.Floor(3 * 2048 * 1.5))
	if e.Boundary() != want {
		t.Fatalf("Boundary() = %d, want %d", e.Boundary(), want)
	}
	if e.Finished() {
		t.Fatal("two full blocks must not end the stream")
	}
}

func TestPushErrors(t *testing.T) {
	e, err := New(256, 128, 1, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := e.PushBlock(core.NewBlock(1, 256)); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("wrong channel count: err = %v", err)
	}
	ragged := core.Block{make([]float64, 256), make([]float64, 255)}
	if err := e.PushBlock(ragged); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("ragged block: err = %v", err)
	}
	if e.Pushed() != 0 {
		t.Fatal("rejected blocks must not be buffered")
	}

	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := e.PushBlock(core.NewBlock(2, 256)); !errors.Is(err, ErrFinished) {
		t.Fatalf("push after finish: err = %v", err)
	}
	if err := e.Finish(); !errors.Is(err, ErrFinished) {
		t.Fatalf("second Finish: err = %v", err)
	}
}

func TestEmptyStream(t *testing.T) {
	e, err := New(256, 128, 1.5, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := e.Drain(); got.Frames() != 0 {
		t.Fatalf("empty stream produced %d frames", got.Frames())
	}
}

func TestGapsWhenSynthesisHopExceedsWindow(t *testing.T) {
	e, err := New(256, 192, 2, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := stretch(t, e, core.Block{testutil.DC(1, 2000)})
	if want := 4000; got.Frames() != want {
		t.Fatalf("got %d frames, want %d", got.Frames(), want)
	}
	testutil.RequireFinite(t, got[0])

	silent := 0
	for _, v := range got[0] {
		if v == 0 {
			silent++
		}
	}
	if silent == 0 {
		t.Fatal("expected silent gaps between non-overlapping windows")
	}
}

func BenchmarkPushPop(b *testing.B) {
	src := testutil.NoiseBlock(1, 0.5, 2, 4096)
	e, err := New(4096, 2048, 1.5, 2)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if err := e.PushBlock(src); err != nil {
			b.Fatal(err)
		}
		e.Drain()
	}
}
