// Package gpio delivers edge interrupts from a GPIO input line.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// EdgeHandler is called once per detected edge with the kernel's per-line
// sequence number. It runs on the watcher's event goroutine, which plays the
// role of interrupt context.
type EdgeHandler func(seq uint32)

// Watcher delivers edges on one line until closed.
type Watcher interface {
	// Close stops edge delivery and releases the line.
	Close() error
}

// Defaults for the ADC data-ready line (BCM numbering).
const (
	DefaultChip   = "gpiochip0"
	DefaultPinADC = 17
)
