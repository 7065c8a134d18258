package transpose

import (
	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/dsp/resample"
)

// Converter is a sample-rate converter that consumes fixed-size input
// blocks. InputFramesNext and OutputFramesNext describe the next Process
// call; Process fails only for a block of the wrong shape.
type Converter interface {
	InputFramesNext() int
	OutputFramesNext() int
	Process(b core.Block) (core.Block, error)
}

// ConverterFactory builds a Converter from inRate to outRate that accepts
// blockSize frames of channels channels.
type ConverterFactory func(inRate, outRate float64, blockSize, channels int) (Converter, error)

// PolyphaseConverter returns a factory for the polyphase FIR converter of
// package resample at quality q.
func PolyphaseConverter(q resample.Quality, opts ...resample.Option) ConverterFactory {
	return func(inRate, outRate float64, blockSize, channels int) (Converter, error) {
		opts := append([]resample.Option{resample.WithQuality(q)}, opts...)
		return resample.NewFixed(inRate, outRate, blockSize, channels, opts...)
	}
}
