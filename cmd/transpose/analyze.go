package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-transpose/internal/analysis"
	"github.com/spf13/cobra"
)

func (a *app) analyzeCmd() *cobra.Command {
	var probes []float64

	cmd := &cobra.Command{
		Use:   "analyze <file.wav>...",
		Short: "Print level and pitch statistics of WAV files",
		Long: `Print level and pitch statistics of WAV files.

With --probe the level of the channel mean is also measured at each given
frequency, e.g. to confirm that a 440 Hz tone shifted by +12 now sits at
880 Hz:

  transpose analyze out.wav --probe 440 --probe 880`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]analysis.Report, 0, len(args))
			for _, path := range args {
				rep, err := analyzeFile(path, probes)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				reports = append(reports, rep)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "File\tCh\tRate\tSeconds\tRMS [dB]\tPeak [dB]\tDominant [Hz]\tClipped\n")
			fmt.Fprintf(tw, "----\t--\t----\t-------\t--------\t---------\t-------------\t-------\n")
			for i, rep := range reports {
				clipped := 0
				for _, c := range rep.PerChannel {
					clipped += c.Clipped
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.2f\t%.2f\t%.1f\t%d\n",
					args[i], rep.Channels, rep.SampleRate, rep.Seconds,
					dB(rep.RMS()), dB(rep.Peak()), rep.DominantHz, clipped)
			}

			if len(probes) > 0 {
				fmt.Fprintf(tw, "\nFile\tProbe [Hz]\tLevel [dB]\n")
				fmt.Fprintf(tw, "----\t----------\t----------\n")
				for i, rep := range reports {
					for _, p := range rep.Probes {
						fmt.Fprintf(tw, "%s\t%.1f\t%.2f\n", args[i], p.Hz, p.LeveldB)
					}
				}
			}

			return tw.Flush()
		},
	}

	cmd.Flags().Float64SliceVar(&probes, "probe", nil, "measure the level at this frequency in Hz (repeatable)")

	return cmd
}

func analyzeFile(path string, probes []float64) (analysis.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return analysis.Report{}, err
	}
	defer f.Close()

	return analysis.WAV(f, probes...)
}
