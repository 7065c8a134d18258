package transpose

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/dither"
	"github.com/cwbudde/algo-transpose/dsp/resample"
	"github.com/cwbudde/algo-transpose/dsp/window"
)

const (
	// MaxSemitones bounds the shift in either direction.
	MaxSemitones = 12
	// DefaultChunkSize is the default engine block size and converter input
	// block size in frames.
	DefaultChunkSize = 4096
)

// Config parameterizes a Pipeline.
type Config struct {
	// Semitones is the shift, in [-MaxSemitones, MaxSemitones].
	Semitones float64
	// ChunkSize is the read size, the engine window length and the converter
	// input block size. Zero selects DefaultChunkSize.
	ChunkSize int
	// HopSize is the analysis hop. Zero selects ChunkSize/2.
	HopSize int
	// Window is the analysis window. The zero value is Hann.
	Window window.Type
	// Quality selects the default converter's filter.
	Quality resample.Quality
	// FractionalHop carries the fractional synthesis hop forward instead of
	// truncating it every window.
	FractionalHop bool
	// DropTail stops at the first converter block that cannot be filled,
	// discarding the frames after the last full block. By default they are
	// flushed through one zero-padded block.
	DropTail bool
	// Dither is applied by File and Bytes when encoding.
	Dither dither.DitherType
	// NewConverter overrides the converter. Nil selects
	// PolyphaseConverter(Quality).
	NewConverter ConverterFactory
	// Logger receives debug progress. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns a Config for a shift of semitones with a Hann
// window, 4096-frame chunks at 50% overlap and balanced resampling. It is
// equal to the zero Config with Semitones set, spelled out.
//
// The remainder after the last full converter block is drained. Set
// DropTail to stop at the first short block instead, so the output holds
// only whole converter blocks.
func DefaultConfig(semitones float64) Config {
	return Config{
		Semitones: semitones,
		ChunkSize: DefaultChunkSize,
		HopSize:   DefaultChunkSize / 2,
		Window:    window.TypeHann,
		Quality:   resample.QualityBalanced,
	}
}

// Ratio returns the frequency ratio 2^(s/12) of a shift of s semitones.
func Ratio(semitones float64) float64 {
	return core.SemitonesToRatio(semitones)
}

// ValidateSemitones reports whether s is a usable shift.
func ValidateSemitones(s float64) error {
	if math.IsNaN(s) || s < -MaxSemitones || s > MaxSemitones {
		return fmt.Errorf("%w: semitones must be in [%d, %d]: %v",
			ErrConfiguration, -MaxSemitones, MaxSemitones, s)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.HopSize == 0 {
		c.HopSize = c.ChunkSize / 2
	}
	if c.NewConverter == nil {
		c.NewConverter = PolyphaseConverter(c.Quality)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
