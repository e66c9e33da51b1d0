package psu

import "github.com/sweeney/psu-debug/internal/debug"

// ADC handles the converter's data-ready interrupt.
type ADC struct {
	vars   *Vars
	tracer *debug.Tracer

	lastSeq uint32
	seen    bool
}

// NewADC creates the handler. tracer may be nil.
func NewADC(vars *Vars, tracer *debug.Tracer) *ADC {
	return &ADC{vars: vars, tracer: tracer}
}

// OnDataReady is the interrupt handler body for one data-ready edge. seq is
// the kernel's per-line edge sequence number; a gap means edges were lost.
// Interrupt context only.
func (a *ADC) OnDataReady(ctx debug.Context, seq uint32) {
	a.vars.ADCCounter.Inc()

	if a.seen && seq-a.lastSeq > 1 && a.tracer != nil {
		a.tracer.Trace(ctx, "adc: missed %d edges", seq-a.lastSeq-1)
	}
	a.lastSeq = seq
	a.seen = true
}
