package testutil

import "github.com/cwbudde/algo-transpose/dsp/core"

// Chunks splits b into consecutive views of size frames, the way a reader
// hands a stream to a block processor. The sequence always ends with a
// short block: when b's length is a multiple of size the last chunk is
// empty.
func Chunks(b core.Block, size int) []core.Block {
	var out []core.Block
	n := b.Frames()
	for start := 0; ; start += size {
		end := min(start+size, n)
		chunk := make(core.Block, len(b))
		for c := range b {
			chunk[c] = b[c][start:end]
		}
		out = append(out, chunk)
		if end-start < size {
			return out
		}
	}
}

// Concat appends blocks channel-wise.
func Concat(channels int, blocks ...core.Block) core.Block {
	out := make(core.Block, channels)
	for _, b := range blocks {
		for c := range out {
			out[c] = append(out[c], b[c]...)
		}
	}
	return out
}
