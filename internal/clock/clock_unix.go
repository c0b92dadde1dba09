//go:build linux || darwin || freebsd || netbsd || openbsd

// File: internal/clock/clock_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package clock

import "golang.org/x/sys/unix"

// RealtimeNow returns CLOCK_REALTIME in nanoseconds since the Unix epoch.
func RealtimeNow() int64 {
	return now(unix.CLOCK_REALTIME)
}

// MonotonicNow returns CLOCK_MONOTONIC in nanoseconds from an arbitrary origin.
func MonotonicNow() int64 {
	return now(unix.CLOCK_MONOTONIC)
}

func now(id int32) int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(id, &ts); err != nil {
		panic("clock: clock_gettime: " + err.Error())
	}
	return ts.Nano()
}
