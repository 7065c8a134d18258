package wavio

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/dither"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const formatPCM = 1

// Decoder reads normalized frames from a 16-bit PCM WAV stream.
type Decoder struct {
	dec  *wav.Decoder
	spec core.AudioSpec
	buf  *audio.IntBuffer
	eof  bool
	read int
}

// NewDecoder parses the header of r and positions the decoder at the first
// sample. Anything other than uncompressed 16-bit PCM with at least one
// channel and a positive rate fails with ErrFormat.
func NewDecoder(r io.ReadSeeker) (*Decoder, error) {
	dec := wav.NewDecoder(r)
	// IsValidFile rejects streams without samples, which are valid here.
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: audio format tag %d, want PCM", ErrFormat, dec.WavAudioFormat)
	}
	spec := core.AudioSpec{
		Channels:   int(dec.NumChans),
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return &Decoder{
		dec:  dec,
		spec: spec,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: spec.Channels, SampleRate: spec.SampleRate},
			SourceBitDepth: spec.BitDepth,
		},
	}, nil
}

// Spec returns the stream format.
func (d *Decoder) Spec() core.AudioSpec { return d.spec }

// FramesRead returns the number of frames returned so far.
func (d *Decoder) FramesRead() int { return d.read }

// ReadFrames reads up to n frames. It returns fewer than n frames only at
// the end of the data, and a zero-frame block once the data is exhausted.
func (d *Decoder) ReadFrames(n int) (core.Block, error) {
	ch := d.spec.Channels
	if n <= 0 || d.eof {
		return core.NewBlock(ch, 0), nil
	}

	want := n * ch
	if cap(d.buf.Data) < want {
		d.buf.Data = make([]int, want)
	}
	data := d.buf.Data[:want]

	got := 0
	for got < want {
		d.buf.Data = data[got:]
		k, err := d.dec.PCMBuffer(d.buf)
		if err != nil {
			d.buf.Data = data
			return nil, fmt.Errorf("wavio: read pcm: %w", err)
		}
		if k == 0 {
			d.eof = true
			break
		}
		got += k
	}
	d.buf.Data = data

	frames := got / ch
	b := core.NewBlock(ch, frames)
	for i := range frames {
		for c := range ch {
			b[c][i] = dither.Dequantize(data[i*ch+c])
		}
	}
	d.read += frames

	return b, nil
}

// ReadAll decodes every frame of r.
func ReadAll(r io.ReadSeeker) (core.AudioSpec, core.Block, error) {
	d, err := NewDecoder(r)
	if err != nil {
		return core.AudioSpec{}, nil, err
	}

	const chunk = 1 << 14
	out := core.NewBlock(d.spec.Channels, 0)
	for {
		b, err := d.ReadFrames(chunk)
		if err != nil {
			return d.spec, nil, err
		}
		for c := range out {
			out[c] = append(out[c], b[c]...)
		}
		if b.Frames() < chunk {
			return d.spec, out, nil
		}
	}
}
