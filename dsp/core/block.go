package core

import (
	"errors"
	"fmt"
)

// ErrBlockShape indicates a block whose channel count or channel lengths
// do not match what the consumer expects.
var ErrBlockShape = errors.New("core: malformed block shape")

// Block is a channel-major collection of samples: b[c][i] is frame i of
// channel c. All channels have the same length.
type Block [][]float64

// NewBlock returns a zero-filled block.
func NewBlock(channels, frames int) Block {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}
	b := make(Block, channels)
	backing := make([]float64, channels*frames)
	for c := range b {
		b[c] = backing[c*frames : (c+1)*frames : (c+1)*frames]
	}
	return b
}

// Channels returns the number of channels.
func (b Block) Channels() int { return len(b) }

// Frames returns the per-channel length, or 0 for a block without channels.
func (b Block) Frames() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Validate checks that b has exactly channels channels of equal length.
func (b Block) Validate(channels int) error {
	if len(b) != channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrBlockShape, len(b), channels)
	}
	n := b.Frames()
	for c := range b {
		if len(b[c]) != n {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrBlockShape, c, len(b[c]), n)
		}
	}
	return nil
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	out := NewBlock(len(b), b.Frames())
	for c := range b {
		copy(out[c], b[c])
	}
	return out
}

// ZeroPadded returns a copy of b extended with silence to frames frames.
// If b is already at least that long, the copy is truncated to frames.
func (b Block) ZeroPadded(frames int) Block {
	out := NewBlock(len(b), frames)
	for c := range b {
		CopyInto(out[c], b[c])
	}
	return out
}

// Head returns a view of the first frames frames of every channel.
// frames is clamped to the block length.
func (b Block) Head(frames int) Block {
	if frames > b.Frames() {
		frames = b.Frames()
	}
	if frames < 0 {
		frames = 0
	}
	out := make(Block, len(b))
	for c := range b {
		out[c] = b[c][:frames]
	}
	return out
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}
