//go:build !(linux || darwin || freebsd || netbsd || openbsd)

// File: internal/clock/clock_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package clock

import "time"

var origin = time.Now()

// RealtimeNow returns wall-clock time in nanoseconds since the Unix epoch.
func RealtimeNow() int64 {
	return time.Now().UnixNano()
}

// MonotonicNow returns nanoseconds elapsed since process start.
func MonotonicNow() int64 {
	return int64(time.Since(origin))
}
