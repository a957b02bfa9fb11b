package mif

import (
	"fmt"
	"io"
)

// Buffer is an in-memory Store, used when building byte streams or
// re-reading ones already held in memory.
type Buffer struct {
	data []byte
	off  int64
}

// NewBuffer returns a buffer positioned at the start of data. A nil
// slice gives an empty, growable buffer.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the current contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += int64(n)
	return n, nil
}

// Write overwrites at the current position, growing the buffer as
// needed. Seeking past the end and writing zero-fills the gap.
func (b *Buffer) Write(p []byte) (int, error) {
	if need := b.off + int64(len(p)); need > int64(len(b.data)) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[b.off:], p)
	b.off += int64(n)
	return n, nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid seek whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative seek offset %d", abs)
	}
	b.off = abs
	return abs, nil
}
