package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/internal/testutil"
	"github.com/cwbudde/algo-transpose/wavio"
	"github.com/matryer/is"
)

func wavBytes(t *testing.T, spec core.AudioSpec, b core.Block) []byte {
	t.Helper()

	var buf wavio.Buffer
	enc, err := wavio.NewEncoder(&buf, spec)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.WriteFrames(b, b.Frames()); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWAVSine(t *testing.T) {
	is := is.New(t)

	spec := core.AudioSpec{Channels: 2, SampleRate: 48000, BitDepth: 16}
	b := testutil.SineBlock(1000, 48000, 0.5, 2, 48000)

	rep, err := WAV(bytes.NewReader(wavBytes(t, spec, b)))
	is.NoErr(err)

	is.Equal(rep.Channels, 2)
	is.Equal(rep.SampleRate, 48000)
	is.Equal(rep.Frames, 48000)
	is.True(math.Abs(rep.Seconds-1) < 1e-9)
	is.True(math.Abs(rep.DominantHz-1000) < 2)             // dominant tone
	is.True(math.Abs(rep.Peak()-0.5) < 1e-3)               // peak level
	is.True(math.Abs(rep.RMS()-0.5/math.Sqrt2) < 1e-3)     // sine RMS
	is.True(math.Abs(rep.PerChannel[0].PeakdB+6.02) < 0.1) // -6 dBFS
}

func TestSilenceIsValidJSON(t *testing.T) {
	is := is.New(t)

	spec := core.AudioSpec{Channels: 1, SampleRate: 8000, BitDepth: 16}
	rep, err := Block(spec, core.NewBlock(1, 4000))
	is.NoErr(err)
	is.Equal(rep.PerChannel[0].RMSdB, float64(FloorDB))
	is.Equal(rep.PerChannel[0].PeakdB, float64(FloorDB))

	_, err = json.Marshal(rep)
	is.NoErr(err) // no Inf or NaN in the report
}

func TestEmptyStream(t *testing.T) {
	is := is.New(t)

	spec := core.AudioSpec{Channels: 2, SampleRate: 8000, BitDepth: 16}
	rep, err := Block(spec, core.NewBlock(2, 0))
	is.NoErr(err)
	is.Equal(rep.Frames, 0)
	is.Equal(rep.DominantHz, 0.0)
}

func TestWAVRejectsGarbage(t *testing.T) {
	is := is.New(t)

	_, err := WAV(bytes.NewReader([]byte("nope")))
	is.True(errors.Is(err, wavio.ErrFormat))
}

func TestProbes(t *testing.T) {
	is := is.New(t)

	spec := core.AudioSpec{Channels: 2, SampleRate: 48000, BitDepth: 16}
	b := testutil.SineBlock(1000, 48000, 0.5, 2, 48000)

	rep, err := Block(spec, b, 1000, 3000)
	is.NoErr(err)
	is.Equal(len(rep.Probes), 2)
	is.Equal(rep.Probes[0].Hz, 1000.0)
	is.True(math.Abs(rep.Probes[0].Level-0.5/math.Sqrt2) < 1e-9) // tone on an exact bin
	is.True(math.Abs(rep.Probes[0].LeveldB+9.03) < 0.01)
	is.True(rep.Probes[1].Level < 1e-9) // no leakage between whole-cycle bins

	_, err = json.Marshal(rep)
	is.NoErr(err)
}

func TestProbeOnEmptyStream(t *testing.T) {
	is := is.New(t)

	spec := core.AudioSpec{Channels: 1, SampleRate: 8000, BitDepth: 16}
	rep, err := Block(spec, core.NewBlock(1, 0), 440)
	is.NoErr(err)
	is.Equal(rep.Probes[0].Level, 0.0)
	is.Equal(rep.Probes[0].LeveldB, float64(FloorDB))
}

func TestProbeRejectsOutOfRange(t *testing.T) {
	is := is.New(t)

	spec := core.AudioSpec{Channels: 1, SampleRate: 8000, BitDepth: 16}
	for _, hz := range []float64{-1, 4001, math.NaN()} {
		_, err := Block(spec, core.NewBlock(1, 100), hz)
		is.True(errors.Is(err, ErrProbe))
	}
}
