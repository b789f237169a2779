package logic

import "github.com/sweeney/kitchen-timer/internal/tick"

// Debouncer suppresses presses that arrive within DebounceTicks of the last
// accepted press of the same button. A suppressed press leaves the reference
// point untouched, so a bounce train cannot extend the suppression window
// past the first bounce.
type Debouncer struct {
	last map[Button]tick.Tick
}

// NewDebouncer seeds both buttons' references with the boot tick, so presses
// inside the first window after startup are suppressed.
func NewDebouncer(now tick.Tick) *Debouncer {
	return &Debouncer{
		last: map[Button]tick.Tick{
			Button1: now,
			Button2: now,
		},
	}
}

// Accept reports whether the press passes the debounce filter. On accept the
// button's reference moves to the press timestamp.
func (d *Debouncer) Accept(p ButtonPress) bool {
	ref, known := d.last[p.Button]
	if !known {
		// Unrecognized button: no reference, no filter, no-op downstream.
		return true
	}
	if p.At.Sub(ref) < DebounceTicks {
		return false
	}
	d.last[p.Button] = p.At
	return true
}
