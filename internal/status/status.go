// Package status hands the latest debug readings from the main loop to
// readers on other goroutines, such as the textfile exporter.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/psu-debug/internal/debug"
)

// Snapshot is a point-in-time view of the debug variables.
// It is a value type and stays valid after the lock is released.
type Snapshot struct {
	Readings   []debug.Reading
	Windows1s  uint64
	Windows10s uint64
	StartTime  time.Time
	Now        time.Time
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds the latest snapshot behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time.
func NewTracker(startTime time.Time) *Tracker {
	return &Tracker{
		snap: Snapshot{StartTime: startTime},
		now:  time.Now,
	}
}

// Update replaces the readings from reg and records which windows closed.
// Called from the main loop. Readings go into a fresh slice so earlier
// snapshots stay valid.
func (t *Tracker) Update(reg *debug.Registry, closed debug.Closed) {
	readings := reg.Read(make([]debug.Reading, 0, reg.Len()))

	t.mu.Lock()
	t.snap.Readings = readings
	if closed.Has(debug.Window1s) {
		t.snap.Windows1s++
	}
	if closed.Has(debug.Window10s) {
		t.snap.Windows10s++
	}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the tracked state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
