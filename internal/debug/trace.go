package debug

import (
	"fmt"
	"io"
	"sync/atomic"
)

// TraceBufferSize is the size of the single trace slot. Messages keep at most
// TraceBufferSize-1 bytes.
const TraceBufferSize = 256

// DateTimeLen bounds the timestamp printed in a trace line.
const DateTimeLen = 19

// Console receives trace lines. Flush must not return before the line is out.
type Console interface {
	io.Writer
	Flush() error
}

// DateTimeFunc returns the current date-time text, or false if none is known.
type DateTimeFunc func() (string, bool)

const (
	traceIdle uint32 = iota
	traceBusy
	tracePending
)

// truncWriter writes into a fixed slice and silently drops what does not fit.
type truncWriter struct {
	buf []byte
}

func (w *truncWriter) Write(p []byte) (int, error) {
	n := copy(w.buf[len(w.buf):cap(w.buf)], p)
	w.buf = w.buf[:len(w.buf)+n]
	return len(p), nil
}

// Tracer is the single-slot trace buffer. At most one message is pending at a
// time; a request made while one is pending is dropped.
type Tracer struct {
	console  Console
	datetime DateTimeFunc

	state atomic.Uint32
	buf   [TraceBufferSize]byte
	w     truncWriter
	line  [TraceBufferSize + DateTimeLen + 16]byte
}

// NewTracer creates a Tracer writing to console. datetime may be nil.
func NewTracer(console Console, datetime DateTimeFunc) *Tracer {
	return &Tracer{console: console, datetime: datetime}
}

// Trace formats a message into the slot. From Interrupt context the output is
// deferred to the next Flush; from Thread context it is emitted immediately.
func (t *Tracer) Trace(ctx Context, format string, args ...any) {
	if !t.state.CompareAndSwap(traceIdle, traceBusy) {
		return
	}

	t.w.buf = t.buf[:0 : TraceBufferSize-1]
	fmt.Fprintf(&t.w, format, args...)

	if ctx == Interrupt {
		t.state.Store(tracePending)
		return
	}

	t.emit()
	t.state.Store(traceIdle)
}

// Flush emits a pending message. It reports whether there was one.
// Main-loop context only.
func (t *Tracer) Flush() bool {
	if t.state.Load() != tracePending {
		return false
	}
	t.emit()
	t.state.Store(traceIdle)
	return true
}

// Pending reports whether a message is waiting for Flush.
func (t *Tracer) Pending() bool {
	return t.state.Load() == tracePending
}

// Message returns the text currently held in the slot.
func (t *Tracer) Message() string {
	return string(t.w.buf)
}

func (t *Tracer) emit() {
	line := append(t.line[:0], "**TRACE"...)
	if dt, ok := t.now(); ok {
		if len(dt) > DateTimeLen {
			dt = dt[:DateTimeLen]
		}
		line = append(line, " ["...)
		line = append(line, dt...)
		line = append(line, "]: "...)
	} else {
		line = append(line, ": "...)
	}
	line = append(line, t.w.buf...)
	line = append(line, '\n')

	if t.console == nil {
		return
	}
	t.console.Write(line)
	t.console.Flush()
}

func (t *Tracer) now() (string, bool) {
	if t.datetime == nil {
		return "", false
	}
	return t.datetime()
}
