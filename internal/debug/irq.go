package debug

import "sync"

// Context identifies where a call is executing.
type Context uint8

const (
	// Thread is normal main-loop context.
	Thread Context = iota
	// Interrupt is the interrupt handler context.
	Interrupt
)

func (c Context) String() string {
	if c == Interrupt {
		return "interrupt"
	}
	return "thread"
}

// Interrupts models the single interrupt line that may preempt the main loop.
// A handler run through Serve never overlaps a Disable section.
// The zero value is ready to use; a nil *Interrupts masks nothing.
type Interrupts struct {
	mask sync.Mutex
}

func noRestore() {}

// Disable masks interrupts until the returned restore func is called:
//
//	defer irq.Disable()()
func (i *Interrupts) Disable() (restore func()) {
	if i == nil {
		return noRestore
	}
	i.mask.Lock()
	return i.mask.Unlock
}

// Serve runs handler in interrupt context, waiting while interrupts are disabled.
func (i *Interrupts) Serve(handler func(ctx Context)) {
	if i != nil {
		i.mask.Lock()
		defer i.mask.Unlock()
	}
	handler(Interrupt)
}
