// Package api
// Author: momentics
//
// Growable memory buffers handed between the stream helpers and their pools.
// The codecs never take ownership of caller memory; they only read views.

package api

// Buffer describes a growable heap region owned by exactly one holder.
type Buffer interface {
	// Bytes returns the current contents; valid until the next Resize or Release.
	Bytes() []byte

	// Len returns the current size in bytes.
	Len() int

	// Resize changes the size, preserving the common prefix.
	Resize(n int)

	// Release returns the buffer to its pool.
	// After Release, buffer must not be used.
	Release()
}

// BufferPool abstracts reuse of buffers.
type BufferPool interface {
	// Get returns a buffer of exactly size bytes.
	Get(size int) Buffer

	// Put returns buffer to pool; buffer must not be used afterwards.
	Put(b Buffer)

	// Stats exposes accounting metrics for observability.
	Stats() BufferPoolStats
}

// BufferPoolStats aggregates buffer allocation/reuse stats.
type BufferPoolStats struct {
	TotalAlloc int64
	TotalReuse int64
	InUse      int64
}
