package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair is within eps. The failure names the worst sample.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}

	worst, at, bad := 0.0, -1, 0
	for i := range got {
		d := math.Abs(got[i] - want[i])
		if !(d <= eps) {
			bad++
			if at < 0 || d > worst || math.IsNaN(d) {
				worst, at = d, i
			}
		}
	}
	if bad > 0 {
		t.Fatalf("%d of %d samples off by more than %g; worst at %d: got %v, want %v",
			bad, len(got), eps, at, got[at], want[at])
	}
}

// RequireBlockNearlyEqual applies RequireSliceNearlyEqual to every channel.
func RequireBlockNearlyEqual(t testing.TB, got, want core.Block, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("channels: got %d, want %d", len(got), len(want))
	}
	for c := range want {
		if len(got[c]) != len(want[c]) {
			t.Fatalf("channel %d length: got %d, want %d", c, len(got[c]), len(want[c]))
		}
		RequireSliceNearlyEqual(t, got[c], want[c], eps)
	}
}

// RequireFinite fails t at the first NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is %v", i, v)
		}
	}
}
