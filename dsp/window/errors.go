package window

import (
	"errors"
	"fmt"
)

var (
	// ErrLength is returned for a window size below one and for sample and
	// coefficient slices of different lengths.
	ErrLength = errors.New("window: invalid length")
	// ErrHop is returned by OverlapAdd for a hop outside [1, len(coeffs)].
	ErrHop = errors.New("window: invalid hop")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be > 0: %d", ErrLength, size)
	}
	return nil
}

func matchLength(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d samples, %d coefficients", ErrLength, len(samples), len(coeffs))
	}
	return nil
}
