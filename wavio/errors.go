package wavio

import "errors"

var (
	// ErrFormat indicates input that is not 16-bit PCM WAV.
	ErrFormat = errors.New("wavio: unsupported format")
	// ErrClosed is returned when frames are written after Close.
	ErrClosed = errors.New("wavio: encoder closed")
)
