package debug

import (
	"bytes"
	"strings"
)

// FakeConsole records trace output for test assertions.
type FakeConsole struct {
	buf     bytes.Buffer
	pending int

	// Flushes counts calls to Flush.
	Flushes int
}

// NewFakeConsole creates an empty FakeConsole.
func NewFakeConsole() *FakeConsole {
	return &FakeConsole{}
}

// Write buffers p until Flush.
func (f *FakeConsole) Write(p []byte) (int, error) {
	f.pending += len(p)
	return f.buf.Write(p)
}

// Flush marks everything written so far as delivered.
func (f *FakeConsole) Flush() error {
	f.Flushes++
	f.pending = 0
	return nil
}

// Unflushed returns the number of bytes written since the last Flush.
func (f *FakeConsole) Unflushed() int {
	return f.pending
}

// Lines returns every complete line written so far.
func (f *FakeConsole) Lines() []string {
	s := strings.TrimSuffix(f.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Reset discards recorded output.
func (f *FakeConsole) Reset() {
	f.buf.Reset()
	f.pending = 0
	f.Flushes = 0
}
