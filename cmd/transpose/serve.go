package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cwbudde/algo-transpose/internal/server"
	"github.com/cwbudde/algo-transpose/internal/version"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [host] [port]",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Host and port default to TRANSPOSE_HOST and
TRANSPOSE_PORT (127.0.0.1:8080).

Routes:
  GET  /                     health check
  GET  /version              build information
  POST /transpose?semitones=N  WAV body in, shifted WAV out
  POST /analyze              WAV body in, JSON report out`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) > 0 {
				cfg.Host = args[0]
			}
			if len(args) > 1 {
				port, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := a.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			log.Info("starting server",
				slog.String("version", version.Version),
				slog.String("addr", cfg.Addr()),
				slog.Int64("max_body_bytes", cfg.MaxBodyBytes))

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return server.New(cfg, log).ListenAndServe(ctx)
		},
	}
}
