package timescale

import "errors"

var (
	// ErrInvalidConfig is returned by New for unusable framing parameters.
	ErrInvalidConfig = errors.New("timescale: invalid configuration")
	// ErrChannelMismatch is returned when a pushed block does not have the
	// engine's channel count or its channels differ in length.
	ErrChannelMismatch = errors.New("timescale: channel mismatch")
	// ErrFinished is returned when input is pushed after end of stream.
	ErrFinished = errors.New("timescale: stream already finished")
)
