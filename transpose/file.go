package transpose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-transpose/wavio"
)

// Stream shifts the WAV stream r into w. The output has the input's
// channel count and sample rate and is always 16-bit PCM.
func Stream(ctx context.Context, r io.ReadSeeker, w io.WriteSeeker, cfg Config) (Stats, error) {
	if err := ValidateSemitones(cfg.Semitones); err != nil {
		return Stats{}, err
	}

	dec, err := wavio.NewDecoder(r)
	if err != nil {
		return Stats{}, readError(err)
	}
	p, err := New(dec.Spec(), cfg)
	if err != nil {
		return Stats{}, err
	}
	enc, err := wavio.NewEncoder(w, dec.Spec(), wavio.WithDither(cfg.Dither))
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	st, err := p.Run(ctx, dec, enc)
	if err != nil {
		return st, err
	}
	if err := enc.Close(); err != nil {
		return st, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return st, nil
}

// File shifts the WAV file at inPath and writes the result to outPath. A
// partially written output file is removed on failure.
func File(ctx context.Context, inPath, outPath string, cfg Config) (st Stats, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(outPath))
		}
	}()

	return Stream(ctx, in, out, cfg)
}

// Bytes shifts an in-memory WAV payload.
func Bytes(ctx context.Context, wav []byte, cfg Config) ([]byte, Stats, error) {
	var out wavio.Buffer
	st, err := Stream(ctx, bytes.NewReader(wav), &out, cfg)
	if err != nil {
		return nil, st, err
	}
	return out.Bytes(), st, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
