package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/algo-transpose/transpose"
	"github.com/spf13/cobra"
)

func (a *app) shiftCmd() *cobra.Command {
	var (
		output        string
		semitones     float64
		chunkSize     int
		hopSize       int
		windowName    string
		quality       string
		ditherName    string
		fractionalHop bool
		noTail        bool
	)

	cmd := &cobra.Command{
		Use:     "shift <input.wav> [semitones]",
		Aliases: []string{"cli"},
		Short:   "Pitch-shift a WAV file",
		Long: `Shift the pitch of a WAV file by semitones in [-12, 12].

The shift is given as the second argument or with --semitones. Negative
values work in either form:

  transpose shift in.wav -5 -o out.wav
  transpose shift in.wav -s -5 -o out.wav`,
		// Flags are parsed in RunE so that a negative shift such as "-5" can
		// stand as the second argument.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, raw []string) error {
			rest, pulled := pullNegatives(cmd, raw)
			fs := cmd.Flags()
			fs.AddFlagSet(cmd.InheritedFlags())
			if err := fs.Parse(rest); err != nil {
				return err
			}
			if help, _ := fs.GetBool("help"); help {
				return cmd.Help()
			}

			args := withPositions(fs.Args(), pulled)
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return err
			}

			input := args[0]
			if len(args) == 2 {
				if fs.Changed("semitones") {
					return fmt.Errorf("semitones given both as argument and flag")
				}
				v, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid semitones %q", args[1])
				}
				semitones = v
			}
			if err := transpose.ValidateSemitones(semitones); err != nil {
				return err
			}

			cfg := a.cfg
			cfg.ChunkSize = chunkSize
			cfg.HopSize = hopSize
			cfg.Window = windowName
			cfg.Quality = quality
			cfg.Dither = ditherName
			cfg.FractionalHop = fractionalHop
			cfg.DrainTail = !noTail
			if err := cfg.Validate(); err != nil {
				return err
			}
			pcfg, err := cfg.Pipeline(semitones)
			if err != nil {
				return err
			}

			log, err := a.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pcfg.Logger = log

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file path: %s\n", input)
			fmt.Fprintf(out, "pitch shift: %v\n", semitones)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			st, err := transpose.File(ctx, input, output, pcfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "successfully transposed %s, saving to %s (%d frames, ratio %.4f, %s)\n",
				input, output, st.FramesOut, st.Ratio, st.Elapsed.Round(time.Millisecond))
			if st.Output.Clipped > 0 {
				fmt.Fprintf(out, "warning: %d samples clipped\n", st.Output.Clipped)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "output.wav", "output WAV file")
	f.Float64VarP(&semitones, "semitones", "s", 0, "pitch shift in semitones, -12 to 12")
	f.IntVar(&chunkSize, "chunk-size", a.cfg.ChunkSize, "analysis window and converter block size in frames")
	f.IntVar(&hopSize, "hop-size", a.cfg.HopSize, "analysis hop in frames (0 = chunk-size/2)")
	f.StringVar(&windowName, "window", a.cfg.Window, "analysis window: rectangular, hann, hamming, blackman, triangle")
	f.StringVar(&quality, "quality", a.cfg.Quality, "resampler quality: fast, balanced, best")
	f.StringVar(&ditherName, "dither", a.cfg.Dither, "output dither: none, rect, tpdf, gaussian")
	f.BoolVar(&fractionalHop, "fractional-hop", a.cfg.FractionalHop, "carry the fractional synthesis hop to avoid drift")
	f.BoolVar(&noTail, "no-tail", !a.cfg.DrainTail, "drop output after the last full converter block")

	return cmd
}

// pullNegatives removes negative numbers standing as positional arguments,
// which the flag parser would take for shorthands. It returns the remaining
// arguments and the removed ones keyed by their positional index.
func pullNegatives(cmd *cobra.Command, args []string) ([]string, map[int]string) {
	rest := make([]string, 0, len(args))
	pulled := make(map[int]string)
	pos := 0
	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case tok == "--":
			return append(rest, args[i:]...), pulled
		case isNegativeNumber(tok):
			pulled[pos] = tok
			pos++
		case strings.HasPrefix(tok, "-") && tok != "-":
			rest = append(rest, tok)
			if takesValue(cmd, tok) && i+1 < len(args) {
				i++
				rest = append(rest, args[i])
			}
		default:
			rest = append(rest, tok)
			pos++
		}
	}
	return rest, pulled
}

// withPositions puts pulled arguments back at their positional index.
func withPositions(args []string, pulled map[int]string) []string {
	out := make([]string, 0, len(args)+len(pulled))
	for len(out) < cap(out) {
		if v, ok := pulled[len(out)]; ok {
			out = append(out, v)
			continue
		}
		out = append(out, args[0])
		args = args[1:]
	}
	return out
}

func isNegativeNumber(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// takesValue reports whether tok is a flag that consumes the next argument.
func takesValue(cmd *cobra.Command, tok string) bool {
	if strings.Contains(tok, "=") {
		return false
	}
	if name, ok := strings.CutPrefix(tok, "--"); ok {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.InheritedFlags().Lookup(name)
		}
		return f != nil && f.NoOptDefVal == ""
	}
	if len(tok) != 2 {
		return false
	}
	f := cmd.Flags().ShorthandLookup(tok[1:])
	if f == nil {
		f = cmd.InheritedFlags().ShorthandLookup(tok[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}
