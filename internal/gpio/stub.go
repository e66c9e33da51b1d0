//go:build !linux

package gpio

import "errors"

// RealWatcher is not available on non-Linux platforms.
type RealWatcher struct{}

// NewRealWatcher returns an error on non-Linux platforms.
func NewRealWatcher(chipName string, pin int, h EdgeHandler) (*RealWatcher, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (r *RealWatcher) Close() error {
	return nil
}
