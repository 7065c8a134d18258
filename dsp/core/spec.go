package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSpec indicates an unusable stream format.
var ErrInvalidSpec = errors.New("core: invalid audio spec")

// OutputBitDepth is the only PCM bit depth this module reads and writes.
const OutputBitDepth = 16

// AudioSpec describes a PCM stream.
type AudioSpec struct {
	Channels   int
	SampleRate int
	BitDepth   int
}

// Validate reports whether s describes a stream that can be processed.
func (s AudioSpec) Validate() error {
	if s.Channels < 1 {
		return fmt.Errorf("%w: channels must be >= 1: %d", ErrInvalidSpec, s.Channels)
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidSpec, s.SampleRate)
	}
	if s.BitDepth != OutputBitDepth {
		return fmt.Errorf("%w: bit depth must be %d: %d", ErrInvalidSpec, OutputBitDepth, s.BitDepth)
	}
	return nil
}

// Duration converts a frame count to wall-clock time at the spec's rate.
func (s AudioSpec) Duration(frames int) time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / float64(s.SampleRate) * float64(time.Second))
}
