package wavio

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("wavio: negative seek offset")

// Buffer is an in-memory io.WriteSeeker. Writing past the end grows the
// buffer; seeking past the end and writing leaves a zero-filled gap.
type Buffer struct {
	data []byte
	pos  int
}

// Write implements io.Writer at the current position.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if n := len(b.data); end > n {
		if end > cap(b.data) {
			grown := make([]byte, end, max(end, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
			if b.pos > n {
				clear(b.data[n:b.pos])
			}
		}
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Seek implements io.Seeker.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.New("wavio: invalid seek whence")
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	b.pos = int(abs)
	return abs, nil
}

// Bytes returns the written contents. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return len(b.data) }

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}
