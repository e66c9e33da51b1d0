package debug

import (
	"math"
	"strconv"
	"sync/atomic"
)

// Stats is a frozen min/avg/max summary of one closed window.
type Stats struct {
	Min uint32
	Avg uint32
	Max uint32
}

// DurationPeriod accumulates duration samples over an open window.
// Owned by the main loop; not safe for concurrent use.
type DurationPeriod struct {
	min   uint32
	max   uint32
	total uint32
	count uint32

	last Stats
}

// NewDurationPeriod returns an accumulator with an empty open window.
func NewDurationPeriod() DurationPeriod {
	return DurationPeriod{min: math.MaxUint32}
}

// Tick adds one sample to the open window.
// total is not overflow checked; a window is assumed short enough to fit.
func (p *DurationPeriod) Tick(d uint32) {
	if d < p.min {
		p.min = d
	}
	if d > p.max {
		p.max = d
	}
	p.total += d
	p.count++
}

// TickPeriod closes the open window. A window with no samples freezes as 0 0 0.
func (p *DurationPeriod) TickPeriod() {
	if p.count > 0 {
		p.last = Stats{Min: p.min, Avg: p.total / p.count, Max: p.max}
	} else {
		p.last = Stats{}
	}

	p.min = math.MaxUint32
	p.max = 0
	p.total = 0
	p.count = 0
}

// Last returns the summary of the most recently closed window.
func (p *DurationPeriod) Last() Stats {
	return p.last
}

// Count returns the number of samples in the open window.
func (p *DurationPeriod) Count() uint32 {
	return p.count
}

// AppendDump appends "<min> <avg> <max>" of the last closed window.
func (p *DurationPeriod) AppendDump(dst []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(p.last.Min), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(p.last.Avg), 10)
	dst = append(dst, ' ')
	return strconv.AppendUint(dst, uint64(p.last.Max), 10)
}

// CounterPeriod counts events over an open window.
// Inc may be called from interrupt context; TickPeriod runs in the main loop.
type CounterPeriod struct {
	counter atomic.Uint32
	last    uint32
}

// Inc counts one event in the open window.
func (p *CounterPeriod) Inc() {
	p.counter.Add(1)
}

// TickPeriod freezes the open count as the last window and restarts it at zero.
// The copy-and-clear runs with interrupts disabled so no increment is lost.
func (p *CounterPeriod) TickPeriod(irq *Interrupts) {
	restore := irq.Disable()
	p.last = p.counter.Load()
	p.counter.Store(0)
	restore()
}

// Last returns the count of the most recently closed window.
func (p *CounterPeriod) Last() uint32 {
	return p.last
}

// Open returns the running count of the open window.
func (p *CounterPeriod) Open() uint32 {
	return p.counter.Load()
}

// AppendDump appends the last closed window's count.
func (p *CounterPeriod) AppendDump(dst []byte) []byte {
	return strconv.AppendUint(dst, uint64(p.last), 10)
}
