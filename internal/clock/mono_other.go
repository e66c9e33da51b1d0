//go:build !linux

package clock

import "time"

// Monotonic falls back to the runtime monotonic clock on non-Linux platforms.
type Monotonic struct {
	epoch time.Time
}

// NewMonotonic returns a Monotonic source starting at zero.
func NewMonotonic() (*Monotonic, error) {
	return &Monotonic{epoch: time.Now()}, nil
}

// Micros returns the current tick count.
func (m *Monotonic) Micros() uint32 {
	return Micros(int64(time.Since(m.epoch)))
}
