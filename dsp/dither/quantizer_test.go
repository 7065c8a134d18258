package dither

import (
	"math"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"bad dither type", []Option{WithDitherType(DitherType(99))}},
		{"negative amplitude", []Option{WithDitherAmplitude(-1)}},
		{"NaN amplitude", []Option{WithDitherAmplitude(math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewQuantizerDefaults(t *testing.T) {
	quant, err := NewQuantizer(nil)
	if err != nil {
		t.Fatal(err)
	}
	if quant.DitherType() != DitherNone {
		t.Errorf("DitherType() = %v, want None", quant.DitherType())
	}
	if quant.DitherAmplitude() != 1.0 {
		t.Errorf("DitherAmplitude() = %v, want 1.0", quant.DitherAmplitude())
	}
}

func TestQuantizeRounding(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{-3, -32767},
		{0.5, 16384},     // 16383.5 rounds away from zero
		{-0.5, -16384},
		{1.0 / 32767, 1},
		{0.4 / 32767, 0},
		{0.6 / 32767, 1},
		{math.NaN(), 0},
		{math.Inf(1), 32767},
	}
	for _, tt := range tests {
		if got := quant.Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDequantizeRoundTrip(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []int{-32767, -1000, -1, 0, 1, 12345, 32767} {
		if got := quant.Quantize(Dequantize(v)); int(got) != v {
			t.Fatalf("round trip of %d gave %d", v, got)
		}
	}
	if got := Dequantize(-32768); got != -1 {
		t.Fatalf("Dequantize(-32768) = %v, want -1", got)
	}
}

func TestDitherStaysWithinAmplitude(t *testing.T) {
	for _, dt := range []DitherType{DitherRectangular, DitherTriangular} {
		quant, err := NewQuantizer(WithDitherType(dt), WithSeed(7))
		if err != nil {
			t.Fatal(err)
		}

		const in = 100.25 / FullScale
		sum := 0
		for range 10000 {
			v := int(quant.Quantize(in))
			if v < 99 || v > 101 {
				t.Fatalf("%v: quantized %d outside [99, 101]", dt, v)
			}
			sum += v
		}

		// Dither makes the long-run mean track the fractional input.
		mean := float64(sum) / 10000
		if math.Abs(mean-100.25) > 0.05 {
			t.Fatalf("%v: mean %.3f, want ~100.25", dt, mean)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, _ := NewQuantizer(WithDitherType(DitherGaussian), WithSeed(42))
	b, _ := NewQuantizer(WithDitherType(DitherGaussian), WithSeed(42))
	for i := range 1000 {
		x := math.Sin(float64(i)) * 0.3
		if a.Quantize(x) != b.Quantize(x) {
			t.Fatalf("sample %d differs between equally seeded quantizers", i)
		}
	}
}

func TestQuantizeInto(t *testing.T) {
	quant, _ := NewQuantizer()
	dst := make([]int, 2)
	n := quant.QuantizeInto(dst, []float64{1, -1, 0.5})
	if n != 2 || dst[0] != 32767 || dst[1] != -32767 {
		t.Fatalf("QuantizeInto = %d %v", n, dst)
	}
}

func BenchmarkQuantizeTPDF(b *testing.B) {
	quant, _ := NewQuantizer(WithDitherType(DitherTriangular), WithSeed(1))
	b.ReportAllocs()
	for b.Loop() {
		quant.Quantize(0.123)
	}
}
