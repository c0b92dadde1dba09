// File: internal/clock/clock.go
// Package clock provides nanosecond clocks and the fixed-width timestamp
// used as a log prefix.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package clock

import "time"

// FormattedSize is the length of Format's output.
const FormattedSize = 23

// FormattedNow formats the current local time as YYYY-MM-DD.HH:MM:SS.mmm.
func FormattedNow() string {
	return Format(time.Unix(0, RealtimeNow()))
}

// Format renders t in local time as YYYY-MM-DD.HH:MM:SS.mmm.
func Format(t time.Time) string {
	var b [FormattedSize]byte
	return string(AppendFormat(b[:0], t))
}

// AppendFormat appends the 23-byte timestamp for t to dst.
func AppendFormat(dst []byte, t time.Time) []byte {
	t = t.Local()
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	dst = appendDigits(dst, year, 4)
	dst = append(dst, '-')
	dst = appendDigits(dst, int(month), 2)
	dst = append(dst, '-')
	dst = appendDigits(dst, day, 2)
	dst = append(dst, '.')
	dst = appendDigits(dst, hour, 2)
	dst = append(dst, ':')
	dst = appendDigits(dst, minute, 2)
	dst = append(dst, ':')
	dst = appendDigits(dst, sec, 2)
	dst = append(dst, '.')
	return appendDigits(dst, t.Nanosecond()/int(time.Millisecond), 3)
}

// appendDigits writes v zero-padded to exactly width digits.
func appendDigits(dst []byte, v, width int) []byte {
	var b [4]byte
	for i := width - 1; i >= 0; i-- {
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return append(dst, b[:width]...)
}
