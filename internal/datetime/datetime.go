// Package datetime supplies the wall-clock text stamped on trace lines.
package datetime

import "time"

// Layout is the trace timestamp format.
const Layout = "2006-01-02 15:04:05"

// Source returns the current date-time text, or false if the time is not
// known yet. Its DateTime method fits debug.DateTimeFunc.
type Source interface {
	DateTime() (string, bool)
}

// System trusts the host clock unconditionally.
type System struct {
	now func() time.Time
}

// NewSystem returns a Source backed by time.Now.
func NewSystem() *System {
	return &System{now: time.Now}
}

// DateTime returns the host time.
func (s *System) DateTime() (string, bool) {
	return s.now().Format(Layout), true
}
