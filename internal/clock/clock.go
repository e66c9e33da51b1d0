// Package clock provides the wrapping microsecond tick counter that drives
// the debug windows. The real source reads CLOCK_MONOTONIC on Linux.
package clock

// Source returns microseconds since an arbitrary epoch, truncated to 32 bits.
// The value wraps roughly every 71.6 minutes.
type Source interface {
	Micros() uint32
}

// Micros converts a monotonic nanosecond reading to a wrapping tick count.
func Micros(nanos int64) uint32 {
	return uint32(uint64(nanos) / 1000)
}
