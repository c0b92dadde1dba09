// Package pool
// Author: momentics <momentics@gmail.com>
//
// Heap buffers for the stream helpers: a growable Buffer with explicit
// Resize, a BytePool recycling them, and a typed wrapper over sync.Pool.
package pool
