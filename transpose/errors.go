package transpose

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-transpose/wavio"
)

var (
	// ErrFormat indicates malformed or unsupported input audio.
	ErrFormat = errors.New("transpose: format error")
	// ErrIO indicates a failure reading or writing the underlying stream.
	ErrIO = errors.New("transpose: i/o error")
	// ErrConfiguration indicates parameters the pipeline cannot run with,
	// such as a semitone count out of range or a rate pair the converter
	// cannot handle. It is reported before any audio is processed.
	ErrConfiguration = errors.New("transpose: configuration error")
)

// readError classifies an error returned by a Source.
func readError(err error) error {
	if errors.Is(err, wavio.ErrFormat) || errors.Is(err, ErrFormat) {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return fmt.Errorf("%w: read: %w", ErrIO, err)
}
