// Command transpose shifts the pitch of 16-bit PCM WAV files by a number of
// semitones while keeping their duration.
//
// Usage:
//
//	transpose shift input.wav 5 -o output.wav
//	transpose cli input.wav -5 -o output.wav
//	transpose shift input.wav -s -7
//	transpose serve 0.0.0.0 8080
//	transpose analyze a.wav b.wav
//	transpose windows --size 4096 --hop 2048
//	transpose tone -o a440.wav --freq 440 --duration 2s
//
// Defaults for every flag come from TRANSPOSE_* environment variables.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-transpose/internal/config"
	"github.com/cwbudde/algo-transpose/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	cfg       config.Config
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "transpose",
		Short: "Shift the pitch of WAV audio by semitones",
		Long: `transpose shifts the pitch of 16-bit PCM WAV audio by up to an octave in
either direction without changing its duration. It runs as a one-shot
converter or as an HTTP service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", cfg.LogFormat, "log format: text or json")

	root.AddCommand(
		a.shiftCmd(),
		a.serveCmd(),
		a.analyzeCmd(),
		a.windowsCmd(),
		a.toneCmd(),
		versionCmd(),
	)
	return root
}

// logger builds the logger selected by the persistent flags. Logs go to
// stderr so that command output on stdout stays clean.
func (a *app) logger(w io.Writer) (*slog.Logger, error) {
	return logging.New(w, a.logLevel, a.logFormat)
}
