package clock

import "sync/atomic"

// FakeSource is a test double whose tick count only moves when told to.
type FakeSource struct {
	now atomic.Uint32
}

// NewFakeSource creates a FakeSource starting at start.
func NewFakeSource(start uint32) *FakeSource {
	f := &FakeSource{}
	f.now.Store(start)
	return f
}

// Micros returns the scripted tick count.
func (f *FakeSource) Micros() uint32 {
	return f.now.Load()
}

// Set moves the tick count to now.
func (f *FakeSource) Set(now uint32) {
	f.now.Store(now)
}

// Advance moves the tick count forward by d, wrapping at 2^32.
func (f *FakeSource) Advance(d uint32) uint32 {
	return f.now.Add(d)
}
