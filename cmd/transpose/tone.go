package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-transpose/dsp/core"
	dspsignal "github.com/cwbudde/algo-transpose/dsp/signal"
	"github.com/cwbudde/algo-transpose/wavio"
	"github.com/spf13/cobra"
)

func (a *app) toneCmd() *cobra.Command {
	var (
		output    string
		waveform  string
		freq      float64
		duration  time.Duration
		rate      int
		channels  int
		amplitude float64
	)

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Write a test signal as a WAV file",
		Long: `Write a test signal as a WAV file. The waveform is one of:

  sine   a sine at --freq
  chord  a major triad rooted at --freq
  sweep  an exponential sweep from --freq up two octaves
  noise  white noise (--freq is ignored)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := dspsignal.ParseWaveform(waveform)
			if err != nil {
				return err
			}

			spec := core.AudioSpec{Channels: channels, SampleRate: rate, BitDepth: core.OutputBitDepth}
			if err := spec.Validate(); err != nil {
				return err
			}

			gen := dspsignal.NewGenerator(core.WithSampleRate(float64(rate)))
			b, err := gen.Tone(w, freq, amplitude, duration, channels)
			if err != nil {
				return err
			}

			if err := writeWAV(output, spec, b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s at %.1f Hz, %d frames, %d channels at %d Hz\n",
				output, w, freq, b.Frames(), channels, rate)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "tone.wav", "output WAV file")
	f.StringVarP(&waveform, "waveform", "w", "sine", "sine, chord, sweep or noise")
	f.Float64Var(&freq, "freq", 440, "frequency in Hz")
	f.DurationVar(&duration, "duration", time.Second, "length")
	f.IntVar(&rate, "rate", 44100, "sample rate in Hz")
	f.IntVar(&channels, "channels", 1, "channel count")
	f.Float64Var(&amplitude, "amplitude", 0.5, "peak amplitude in [0, 1]")

	return cmd
}

func writeWAV(path string, spec core.AudioSpec, b core.Block) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc, err := wavio.NewEncoder(f, spec)
	if err != nil {
		return err
	}
	if err := enc.WriteFrames(b, b.Frames()); err != nil {
		return err
	}
	return enc.Close()
}
