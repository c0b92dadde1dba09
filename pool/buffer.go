// File: pool/buffer.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Growable heap buffer with explicit resize.

package pool

import "github.com/momentics/hioload-codec/api"

// Buffer is a heap byte region whose size is changed explicitly with Resize.
// Growing keeps the existing prefix; shrinking keeps the capacity for reuse.
type Buffer struct {
	data  []byte
	owner *BytePool
}

var _ api.Buffer = (*Buffer)(nil)

// NewBuffer allocates a buffer of n bytes that is not tied to any pool.
func NewBuffer(n int) *Buffer {
	return &Buffer{data: make([]byte, n)}
}

// Bytes returns the current contents.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the current size.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the size the buffer can reach without reallocating.
func (b *Buffer) Cap() int { return cap(b.data) }

// Resize sets the size to n. Bytes beyond the old size are zero.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		panic("pool: negative buffer size")
	}
	if n <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:n]
		if n > old {
			clear(b.data[old:])
		}
		return
	}
	c := 2 * cap(b.data)
	if c < n {
		c = n
	}
	grown := make([]byte, n, c)
	copy(grown, b.data)
	b.data = grown
}

// Release hands the buffer back to its pool, if it came from one.
func (b *Buffer) Release() {
	if b.owner != nil {
		b.owner.Put(b)
	}
}
