package gpio

// FakeWatcher is a test double that raises edges on demand.
type FakeWatcher struct {
	handler EdgeHandler
	seq     uint32

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeWatcher creates a FakeWatcher delivering to h.
func NewFakeWatcher(h EdgeHandler) *FakeWatcher {
	return &FakeWatcher{handler: h}
}

// Fire delivers n consecutive edges. Nothing is delivered after Close.
func (f *FakeWatcher) Fire(n int) {
	for i := 0; i < n; i++ {
		if f.Closed {
			return
		}
		f.seq++
		f.handler(f.seq)
	}
}

// Skip advances the sequence by n without delivering, as if the kernel
// dropped n edges.
func (f *FakeWatcher) Skip(n int) {
	f.seq += uint32(n)
}

// Close stops delivery.
func (f *FakeWatcher) Close() error {
	f.Closed = true
	return nil
}
