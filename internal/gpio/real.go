//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealWatcher watches a falling-edge interrupt line on actual hardware.
type RealWatcher struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealWatcher requests pin on chip as a falling-edge input and calls h for
// every edge. The ADC pulls data-ready low, so the line idles with a pull-up.
func NewRealWatcher(chipName string, pin int, h EdgeHandler) (*RealWatcher, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			h(evt.LineSeqno)
		}),
	)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request ADC pin %d: %w", pin, err)
	}

	return &RealWatcher{chip: chip, line: line}, nil
}

// Close releases the line and the chip.
// The pin is left as a plain input with pull-down, matching Pi boot defaults,
// so attached hardware sees the same state across reboots.
func (r *RealWatcher) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown, gpiocdev.WithoutEdges); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure ADC pin: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close ADC pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
