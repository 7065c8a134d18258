package testutil

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-transpose/dsp/core"
)

// fatalRecorder captures the first Fatalf and unwinds like FailNow.
type fatalRecorder struct {
	testing.TB
	msg string
}

func (r *fatalRecorder) Helper() {}

func (r *fatalRecorder) Fatalf(format string, args ...any) {
	r.msg = fmt.Sprintf(format, args...)
	panic(r)
}

func failure(check func(tb testing.TB)) (msg string) {
	r := &fatalRecorder{}
	defer func() {
		if v := recover(); v != nil && v != any(r) {
			panic(v)
		}
		msg = r.msg
	}()
	check(r)
	return ""
}

func TestRequireSliceNearlyEqual(t *testing.T) {
	tests := []struct {
		name      string
		got, want []float64
		eps       float64
		msg       string
	}{
		{name: "equal", got: []float64{1, 2}, want: []float64{1, 2}},
		{name: "within", got: []float64{1, 2.05}, want: []float64{1, 2}, eps: 0.1},
		{name: "length", got: []float64{1}, want: []float64{1, 2}, msg: "length: got 1, want 2"},
		{name: "worst", got: []float64{1.2, 2, 3.5}, want: []float64{1, 2, 3}, eps: 0.1,
			msg: "2 of 3 samples off by more than 0.1; worst at 2"},
		{name: "nan", got: []float64{math.NaN()}, want: []float64{0}, eps: 1, msg: "worst at 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := failure(func(tb testing.TB) {
				RequireSliceNearlyEqual(tb, tt.got, tt.want, tt.eps)
			})
			if tt.msg == "" && msg != "" {
				t.Fatalf("unexpected failure: %s", msg)
			}
			if !strings.Contains(msg, tt.msg) {
				t.Fatalf("failure %q does not contain %q", msg, tt.msg)
			}
		})
	}
}

func TestRequireBlockNearlyEqual(t *testing.T) {
	a := core.Block{{1, 2}, {3, 4}}

	if msg := failure(func(tb testing.TB) { RequireBlockNearlyEqual(tb, a, a.Clone(), 0) }); msg != "" {
		t.Fatalf("unexpected failure: %s", msg)
	}
	msg := failure(func(tb testing.TB) { RequireBlockNearlyEqual(tb, a[:1], a, 0) })
	if !strings.Contains(msg, "channels: got 1, want 2") {
		t.Fatalf("failure = %q", msg)
	}
	msg = failure(func(tb testing.TB) { RequireBlockNearlyEqual(tb, core.Block{{1, 2}, {3}}, a, 0) })
	if !strings.Contains(msg, "channel 1 length") {
		t.Fatalf("failure = %q", msg)
	}
}

func TestRequireFinite(t *testing.T) {
	if msg := failure(func(tb testing.TB) { RequireFinite(tb, []float64{0, -1, 1e300}) }); msg != "" {
		t.Fatalf("unexpected failure: %s", msg)
	}
	msg := failure(func(tb testing.TB) { RequireFinite(tb, []float64{0, math.Inf(-1)}) })
	if msg != "sample 1 is -Inf" {
		t.Fatalf("failure = %q", msg)
	}
}
