package debug

// Window lengths in microseconds.
const (
	Window1sLength  uint32 = 1_000_000
	Window10sLength uint32 = 10_000_000
)

// Closed is the set of windows closed by one Dispatcher.Tick.
type Closed uint8

const (
	Window1s Closed = 1 << iota
	Window10s
)

// Has reports whether w is in the set.
func (c Closed) Has(w Closed) bool {
	return c&w != 0
}

// window tracks when one window length last closed.
type window struct {
	length  uint32
	start   uint32
	started bool
}

// elapsed reports whether the window has run its length at now, restarting
// it if so. The first call only records the start. Unsigned subtraction keeps
// this correct across one wrap of the tick counter.
func (w *window) elapsed(now uint32) bool {
	if !w.started {
		w.start = now
		w.started = true
		return false
	}
	if now-w.start < w.length {
		return false
	}
	w.start = now
	return true
}

// Dispatcher ages the windows once per main-loop iteration and drains the
// deferred trace. Windows are detected on every tick rather than scheduled,
// so a slow loop delays a close by at most one iteration and never queues.
type Dispatcher struct {
	vars   *Registry
	loop   *Duration
	tracer *Tracer

	sec1  window
	sec10 window
}

// NewDispatcher wires the registry, the main-loop duration variable and the
// tracer. loop and tracer may be nil.
func NewDispatcher(vars *Registry, loop *Duration, tracer *Tracer) *Dispatcher {
	return &Dispatcher{
		vars:   vars,
		loop:   loop,
		tracer: tracer,
		sec1:   window{length: Window1sLength},
		sec10:  window{length: Window10sLength},
	}
}

// Tick runs one dispatcher step for the current tick count and returns the
// windows it closed.
func (d *Dispatcher) Tick(now uint32) Closed {
	if d.loop != nil {
		d.loop.Tick(now)
	}

	var closed Closed
	if d.sec1.elapsed(now) {
		d.vars.Tick1secPeriod()
		closed |= Window1s
	}
	if d.sec10.elapsed(now) {
		d.vars.Tick10secPeriod()
		closed |= Window10s
	}

	if d.tracer != nil {
		d.tracer.Flush()
	}
	return closed
}
