// Package gpio provides the button and indicator hardware abstraction.
// The real implementation uses the Linux GPIO character device; fakes allow
// testing without hardware.
//
// Buttons are edge-triggered: the driver delivers one callback per falling
// edge, and the callback's only job is to stamp the press with the current
// tick and push it onto the event queue. Everything else (debounce, state)
// happens in the main loop.
package gpio

import "github.com/sweeney/kitchen-timer/internal/logic"

// Default pin assignments (BCM numbering).
const (
	DefaultPinButton1   = 17
	DefaultPinButton2   = 27
	DefaultPinIndicator = 22
)

// PressFunc is called from the GPIO event goroutine on each button edge.
// It must not block.
type PressFunc func(logic.Button)

// Buttons is the two-button input source.
type Buttons interface {
	// Close releases the button lines.
	Close() error
}

// Indicator is the alarm-expiry LED.
type Indicator interface {
	// Set drives the indicator on or off.
	Set(on bool) error

	// Close releases the output line.
	Close() error
}
