// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-codec/api"
)

// BytePool recycles Buffers whose capacity is at least the pool's base size.
// Buffers that grew while in use are kept at their larger capacity.
type BytePool struct {
	size  int
	pool  *SyncPool[*Buffer]
	alloc atomic.Int64
	reuse atomic.Int64
	inUse atomic.Int64
}

var _ api.BufferPool = (*BytePool)(nil)

// NewBytePool creates a pool handing out buffers backed by at least size bytes.
func NewBytePool(size int) *BytePool {
	p := &BytePool{size: size}
	p.pool = NewSyncPool(func() *Buffer {
		p.alloc.Add(1)
		p.reuse.Add(-1)
		return &Buffer{data: make([]byte, 0, size), owner: p}
	})
	return p
}

// GetBuffer returns a pooled buffer resized to n bytes.
func (p *BytePool) GetBuffer(n int) *Buffer {
	b := p.pool.Get()
	p.reuse.Add(1)
	p.inUse.Add(1)
	b.data = b.data[:0]
	b.Resize(n)
	return b
}

// Get implements api.BufferPool.
func (p *BytePool) Get(size int) api.Buffer {
	return p.GetBuffer(size)
}

// Put returns b to the pool. Buffers from other pools are ignored.
func (p *BytePool) Put(b api.Buffer) {
	pb, ok := b.(*Buffer)
	if !ok || pb.owner != p {
		return
	}
	p.inUse.Add(-1)
	p.pool.Put(pb)
}

// Stats returns allocation counters.
func (p *BytePool) Stats() api.BufferPoolStats {
	return api.BufferPoolStats{
		TotalAlloc: p.alloc.Load(),
		TotalReuse: p.reuse.Load(),
		InUse:      p.inUse.Load(),
	}
}
