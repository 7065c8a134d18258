// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/algo-transpose/dsp/dither"
	"github.com/cwbudde/algo-transpose/dsp/resample"
	"github.com/cwbudde/algo-transpose/dsp/window"
	"github.com/cwbudde/algo-transpose/transpose"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config holds runtime configuration, loaded from TRANSPOSE_* variables.
type Config struct {
	// Server
	Host            string
	Port            int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration

	// Pipeline
	ChunkSize     int
	HopSize       int // 0 means ChunkSize/2
	Window        string
	Quality       string
	Dither        string
	FractionalHop bool
	DrainTail     bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		Host:            envStr("TRANSPOSE_HOST", "127.0.0.1"),
		Port:            envInt("TRANSPOSE_PORT", 8080),
		MaxBodyBytes:    int64(envInt("TRANSPOSE_MAX_BODY_MB", 50)) << 20,
		ShutdownTimeout: time.Duration(envInt("TRANSPOSE_SHUTDOWN_TIMEOUT", 10)) * time.Second,
		ReadTimeout:     time.Duration(envInt("TRANSPOSE_READ_TIMEOUT", 60)) * time.Second,

		ChunkSize:     envInt("TRANSPOSE_CHUNK_SIZE", transpose.DefaultChunkSize),
		HopSize:       envInt("TRANSPOSE_HOP_SIZE", 0),
		Window:        envStr("TRANSPOSE_WINDOW", "hann"),
		Quality:       envStr("TRANSPOSE_QUALITY", "balanced"),
		Dither:        envStr("TRANSPOSE_DITHER", "none"),
		FractionalHop: envBool("TRANSPOSE_FRACTIONAL_HOP", false),
		DrainTail:     envBool("TRANSPOSE_DRAIN_TAIL", true),

		LogLevel:  envStr("TRANSPOSE_LOG_LEVEL", "info"),
		LogFormat: envStr("TRANSPOSE_LOG_FORMAT", "text"),
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max body %d bytes", ErrInvalid, c.MaxBodyBytes)
	}
	if c.ChunkSize < 2 {
		return fmt.Errorf("%w: chunk size %d", ErrInvalid, c.ChunkSize)
	}
	if c.HopSize < 0 || c.HopSize >= c.ChunkSize {
		return fmt.Errorf("%w: hop size %d for chunk size %d", ErrInvalid, c.HopSize, c.ChunkSize)
	}
	_, err := c.Pipeline(0)
	return err
}

// Pipeline returns the transpose configuration for a shift of semitones.
func (c Config) Pipeline(semitones float64) (transpose.Config, error) {
	win, ok := window.ParseType(c.Window)
	if !ok {
		return transpose.Config{}, fmt.Errorf("%w: window %q", ErrInvalid, c.Window)
	}
	q, err := resample.ParseQuality(c.Quality)
	if err != nil {
		return transpose.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	d, err := dither.ParseDitherType(c.Dither)
	if err != nil {
		return transpose.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := transpose.DefaultConfig(semitones)
	cfg.ChunkSize = c.ChunkSize
	cfg.HopSize = c.HopSize
	if cfg.HopSize == 0 {
		cfg.HopSize = c.ChunkSize / 2
	}
	cfg.Window = win
	cfg.Quality = q
	cfg.Dither = d
	cfg.FractionalHop = c.FractionalHop
	cfg.DropTail = !c.DrainTail

	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
