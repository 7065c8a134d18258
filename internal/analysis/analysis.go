// Package analysis summarizes a WAV stream for the analyze command and the
// /analyze endpoint.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/spectrum"
	"github.com/cwbudde/algo-transpose/stats/frequency"
	timestats "github.com/cwbudde/algo-transpose/stats/time"
	"github.com/cwbudde/algo-transpose/wavio"
)

// FloorDB replaces -Inf levels of silent channels so reports stay valid
// JSON.
const FloorDB = -200

// ErrProbe is returned for a probe frequency outside [0, rate/2].
var ErrProbe = errors.New("analysis: invalid probe frequency")

// Channel holds the level statistics of one channel.
type Channel struct {
	RMS      float64 `json:"rms"`
	RMSdB    float64 `json:"rms_db"`
	Peak     float64 `json:"peak"`
	PeakdB   float64 `json:"peak_db"`
	DC       float64 `json:"dc"`
	Clipped  int     `json:"clipped"`
	Crossing int     `json:"zero_crossings"`
}

// Report describes a stream.
type Report struct {
	Channels   int       `json:"channels"`
	SampleRate int       `json:"sample_rate"`
	Frames     int       `json:"frames"`
	Seconds    float64   `json:"seconds"`
	DominantHz float64   `json:"dominant_hz"`
	CentroidHz float64   `json:"centroid_hz"`
	Flatness   float64   `json:"flatness"`
	RolloffHz  float64   `json:"rolloff_hz"`
	PerChannel []Channel `json:"per_channel"`
	Probes     []Probe   `json:"probes,omitempty"`
}

// Probe is the level of the channel mean at one frequency. A full-scale
// sine at exactly Hz reads about -3 dB.
type Probe struct {
	Hz      float64 `json:"hz"`
	Level   float64 `json:"level"`
	LeveldB float64 `json:"level_db"`
}

// Peak returns the largest peak over all channels.
func (r Report) Peak() float64 {
	peak := 0.0
	for _, c := range r.PerChannel {
		peak = math.Max(peak, c.Peak)
	}
	return peak
}

// RMS returns the power mean of the channel RMS levels.
func (r Report) RMS() float64 {
	if len(r.PerChannel) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range r.PerChannel {
		sum += c.RMS * c.RMS
	}
	return math.Sqrt(sum / float64(len(r.PerChannel)))
}

// WAV decodes r and analyzes it, measuring the level at every probe
// frequency.
func WAV(r io.ReadSeeker, probes ...float64) (Report, error) {
	spec, b, err := wavio.ReadAll(r)
	if err != nil {
		return Report{}, err
	}
	return Block(spec, b, probes...)
}

// Block analyzes decoded audio. The spectrum and the probes are taken from
// the channel mean.
func Block(spec core.AudioSpec, b core.Block, probes ...float64) (Report, error) {
	if err := b.Validate(spec.Channels); err != nil {
		return Report{}, fmt.Errorf("analysis: %w", err)
	}
	nyquist := float64(spec.SampleRate) / 2
	for _, hz := range probes {
		if !(hz >= 0 && hz <= nyquist) {
			return Report{}, fmt.Errorf("%w: %v Hz at %d Hz", ErrProbe, hz, spec.SampleRate)
		}
	}

	rep := Report{
		Channels:   spec.Channels,
		SampleRate: spec.SampleRate,
		Frames:     b.Frames(),
		Seconds:    spec.Duration(b.Frames()).Seconds(),
		PerChannel: make([]Channel, spec.Channels),
	}
	for c, ch := range b {
		st := timestats.Calculate(ch)
		rep.PerChannel[c] = Channel{
			RMS:      st.RMS,
			RMSdB:    floorDB(st.RMSdB),
			Peak:     st.Peak,
			PeakdB:   floorDB(st.PeakdB),
			DC:       st.DC,
			Clipped:  st.Clipped,
			Crossing: st.ZeroCrossings,
		}
	}

	mono := make([]float64, b.Frames())
	for _, ch := range b {
		for i, v := range ch {
			mono[i] += v
		}
	}
	for i := range mono {
		mono[i] /= float64(len(b))
	}

	for _, hz := range probes {
		level, err := spectrum.ToneLevel(mono, hz, float64(spec.SampleRate))
		if err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrProbe, err)
		}
		rep.Probes = append(rep.Probes, Probe{
			Hz:      hz,
			Level:   level,
			LeveldB: floorDB(core.LinearToDB(level)),
		})
	}

	if b.Frames() == 0 {
		return rep, nil
	}

	fr, err := frequency.Analyze(mono, float64(spec.SampleRate))
	if err != nil {
		return Report{}, fmt.Errorf("analysis: %w", err)
	}
	rep.DominantHz = finite(fr.DominantHz)
	rep.CentroidHz = finite(fr.Centroid)
	rep.Flatness = finite(fr.Flatness)
	rep.RolloffHz = finite(fr.Rolloff)

	return rep, nil
}

func floorDB(v float64) float64 {
	if math.IsNaN(v) || v < FloorDB {
		return FloorDB
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
