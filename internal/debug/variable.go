// Package debug contains the runtime instrumentation core: named debug
// variables fed by the control loop and the interrupt handler, the 1 s and
// 10 s window accounting, and the interrupt-safe trace slot.
//
// Nothing here allocates, blocks or logs on the hot path. Time is always
// supplied by the caller as a wrapping microsecond tick count.
package debug

import (
	"math"
	"strconv"
	"sync/atomic"
)

// TickSource supplies the monotonic microsecond counter. It wraps at 2^32.
type TickSource interface {
	Micros() uint32
}

// Kind names the variant of a Variable.
type Kind uint8

const (
	KindValue Kind = iota
	KindDuration
	KindCounter
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindDuration:
		return "duration"
	case KindCounter:
		return "counter"
	}
	return "unknown"
}

// Variable is one named debug variable: a *Value, *Duration or *Counter.
// The set is closed; the registry dispatches on the concrete type.
type Variable interface {
	Name() string
	Kind() Kind
	sealed()
}

// Reading is a point-in-time copy of what a variable reports.
type Reading struct {
	Name string
	Kind Kind

	// KindValue
	Value int32

	// KindDuration: last closed windows and lifetime extrema.
	Duration1s  Stats
	Duration10s Stats
	MinTotal    uint32
	MaxTotal    uint32

	// KindCounter: last closed windows and lifetime total.
	Count1s  uint32
	Count10s uint32
	Total    uint32
}

type base struct {
	name string
}

func (b *base) Name() string { return b.name }
func (b *base) sealed()      {}

// Value holds the last number written by its owner. No windowing.
type Value struct {
	base
	value atomic.Int32
}

// NewValue creates a Value variable.
func NewValue(name string) *Value {
	return &Value{base: base{name: name}}
}

func (v *Value) Kind() Kind { return KindValue }

// Set stores the current value. Safe from either context.
func (v *Value) Set(x int32) {
	v.value.Store(x)
}

// Get returns the current value.
func (v *Value) Get() int32 {
	return v.value.Load()
}

// AppendDump appends the value as a signed integer.
func (v *Value) AppendDump(dst []byte) []byte {
	return strconv.AppendInt(dst, int64(v.value.Load()), 10)
}

// Duration measures the time between successive ticks (or a Start/Finish
// pair) and keeps 1 s and 10 s windows plus lifetime extrema.
// Main-loop context only.
type Duration struct {
	base
	ticks TickSource

	lastTickCount uint32
	started       bool

	duration1sec  DurationPeriod
	duration10sec DurationPeriod

	minTotal uint32
	maxTotal uint32
}

// NewDuration creates a Duration variable. ticks is read by Start and Finish
// and may be nil if only Tick is used.
func NewDuration(name string, ticks TickSource) *Duration {
	return &Duration{
		base:          base{name: name},
		ticks:         ticks,
		duration1sec:  NewDurationPeriod(),
		duration10sec: NewDurationPeriod(),
		minTotal:      math.MaxUint32,
	}
}

func (d *Duration) Kind() Kind { return KindDuration }

// Start marks the beginning of a timed section.
func (d *Duration) Start() {
	d.lastTickCount = d.ticks.Micros()
	d.started = true
}

// Finish records the time elapsed since Start.
func (d *Duration) Finish() {
	d.Tick(d.ticks.Micros())
}

// Tick records now minus the previous tick. The first tick with no prior
// Start or Tick only sets the reference point.
func (d *Duration) Tick(now uint32) {
	if !d.started {
		d.lastTickCount = now
		d.started = true
		return
	}

	duration := now - d.lastTickCount

	d.duration1sec.Tick(duration)
	d.duration10sec.Tick(duration)

	if duration < d.minTotal {
		d.minTotal = duration
	}
	if duration > d.maxTotal {
		d.maxTotal = duration
	}

	d.lastTickCount = now
}

func (d *Duration) Tick1secPeriod()  { d.duration1sec.TickPeriod() }
func (d *Duration) Tick10secPeriod() { d.duration10sec.TickPeriod() }

// Lifetime returns the extrema over the whole run. Min is MaxUint32 until the
// first sample.
func (d *Duration) Lifetime() (min, max uint32) {
	return d.minTotal, d.maxTotal
}

// AppendDump appends "<1s> / <10s> / <minTotal> <maxTotal>".
func (d *Duration) AppendDump(dst []byte) []byte {
	dst = d.duration1sec.AppendDump(dst)
	dst = append(dst, " / "...)
	dst = d.duration10sec.AppendDump(dst)
	dst = append(dst, " / "...)
	dst = strconv.AppendUint(dst, uint64(d.minTotal), 10)
	dst = append(dst, ' ')
	return strconv.AppendUint(dst, uint64(d.maxTotal), 10)
}

// Counter counts events in 1 s and 10 s windows plus a lifetime total.
// Inc is interrupt safe.
type Counter struct {
	base
	irq *Interrupts

	counter1sec  CounterPeriod
	counter10sec CounterPeriod
	totalCounter atomic.Uint32
}

// NewCounter creates a Counter variable whose window resets mask irq.
func NewCounter(name string, irq *Interrupts) *Counter {
	return &Counter{base: base{name: name}, irq: irq}
}

func (c *Counter) Kind() Kind { return KindCounter }

// Inc counts one event.
func (c *Counter) Inc() {
	c.counter1sec.Inc()
	c.counter10sec.Inc()
	c.totalCounter.Add(1)
}

func (c *Counter) Tick1secPeriod()  { c.counter1sec.TickPeriod(c.irq) }
func (c *Counter) Tick10secPeriod() { c.counter10sec.TickPeriod(c.irq) }

// Total returns the lifetime count. It never resets.
func (c *Counter) Total() uint32 {
	return c.totalCounter.Load()
}

// AppendDump appends "<last1s> / <last10s> / <total>".
func (c *Counter) AppendDump(dst []byte) []byte {
	dst = c.counter1sec.AppendDump(dst)
	dst = append(dst, " / "...)
	dst = c.counter10sec.AppendDump(dst)
	dst = append(dst, " / "...)
	return strconv.AppendUint(dst, uint64(c.totalCounter.Load()), 10)
}

func read(v Variable) Reading {
	r := Reading{Name: v.Name(), Kind: v.Kind()}
	switch v := v.(type) {
	case *Value:
		r.Value = v.Get()
	case *Duration:
		r.Duration1s = v.duration1sec.Last()
		r.Duration10s = v.duration10sec.Last()
		r.MinTotal, r.MaxTotal = v.Lifetime()
	case *Counter:
		r.Count1s = v.counter1sec.Last()
		r.Count10s = v.counter10sec.Last()
		r.Total = v.Total()
	}
	return r
}
