package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/window"
	"github.com/spf13/cobra"
)

func (a *app) windowsCmd() *cobra.Command {
	var (
		size      int
		hop       int
		symmetric bool
	)

	cmd := &cobra.Command{
		Use:   "windows [window-name...]",
		Short: "Print overlap-add properties of the analysis windows",
		Long: `Print the overlap-add gain of each analysis window at the given size and
hop. A window suits the time-scaling engine when its shifted copies sum to a
constant, that is when the ripple is 0 dB.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hop == 0 {
				hop = size / 2
			}

			types := window.Types()
			if len(args) > 0 {
				types = types[:0:0]
				for _, name := range args {
					t, ok := window.ParseType(name)
					if !ok {
						return fmt.Errorf("unknown window %q", name)
					}
					types = append(types, t)
				}
			}

			var opts []window.Option
			if symmetric {
				opts = append(opts, window.WithSymmetric())
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Window\tSize\tHop\tCoherent Gain\tOLA Min\tOLA Max\tRipple [dB]\tFlat\n")
			fmt.Fprintf(tw, "------\t----\t---\t-------------\t-------\t-------\t-----------\t----\n")

			for _, t := range types {
				coeffs := window.Generate(t, size, opts...)
				st, err := window.OverlapAdd(coeffs, hop)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.6f\t%.6f\t%.4f\t%v\n",
					t, size, hop, coherentGain(coeffs), st.Min, st.Max, st.RippledB, st.Flat(1e-9))
			}

			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.IntVar(&size, "size", 4096, "window length in samples")
	f.IntVar(&hop, "hop", 0, "hop in samples (0 = size/2)")
	f.BoolVar(&symmetric, "symmetric", false, "use the symmetric form instead of the periodic one")

	return cmd
}

func coherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}

func dB(linear float64) float64 {
	v := core.LinearToDB(linear)
	if v < -200 {
		return -200
	}
	return v
}
