// Package logic contains the pure control core of the kitchen timer: time
// arithmetic, the button debounce filter, and the display state machine.
// This package has NO hardware, transport, or OS dependencies. The current
// tick is always injected, so every path is testable with plain values.
package logic

import (
	"fmt"

	"github.com/sweeney/kitchen-timer/internal/tick"
)

// Timeouts and periods, in ticks (1 tick = 1ms). Fixed at compile time;
// runtime configurability is deliberately not offered.
const (
	DebounceTicks    = 200   // minimum gap between accepted presses of one button
	AlarmInitTicks   = 10000 // idle time allowed in the AlarmInit state
	IndicatorOnTicks = 15000 // indicator auto-off timeout
	MinuteTicks      = 60000 // clock advance and alarm countdown period
)

// Button identifies one of the two physical buttons.
type Button int

const (
	Button1 Button = 1 // silence indicator / arm / decrement
	Button2 Button = 2 // increment alarm
)

// ButtonPress is one button edge, stamped with the tick at which the edge
// was observed. Produced by the GPIO event path, consumed exactly once by
// the main loop.
type ButtonPress struct {
	Button Button
	At     tick.Tick
}

// DisplayState is which of the three screens the controller currently
// renders and reacts as.
type DisplayState string

const (
	StateClock     DisplayState = "CLOCK"
	StateAlarmInit DisplayState = "ALARM_INIT"
	StateAlarm     DisplayState = "ALARM"
)

// TimeOfDay is an hour:minute pair. The zero value is 0:00.
type TimeOfDay struct {
	HH int // 0..23
	MM int // 0..59
}

// IsZero reports whether t is 0:00.
func (t TimeOfDay) IsZero() bool {
	return t.HH == 0 && t.MM == 0
}

// Advance returns t plus one minute. Minutes roll into hours at 60; hours
// wrap at 24.
func (t TimeOfDay) Advance() TimeOfDay {
	t.MM++
	if t.MM == 60 {
		t.MM = 0
		t.HH++
		if t.HH == 24 {
			t.HH = 0
		}
	}
	return t
}

// Retreat returns t minus one minute, flooring at 0:00 (retreating from
// 0:00 is a no-op, not a wrap to 23:59).
func (t TimeOfDay) Retreat() TimeOfDay {
	if t.IsZero() {
		return t
	}
	if t.MM == 0 {
		t.MM = 59
		t.HH--
	} else {
		t.MM--
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.HH, t.MM)
}

// EventType classifies a controller event for telemetry.
type EventType string

const (
	// EventAlarmAdjusted fires when a press changes the alarm time.
	EventAlarmAdjusted EventType = "ALARM_ADJUSTED"
	// EventAlarmExpired fires when the countdown reaches 0:00.
	EventAlarmExpired EventType = "ALARM_EXPIRED"
	// EventAlarmSilenced fires when Button1 turns the indicator off.
	EventAlarmSilenced EventType = "ALARM_SILENCED"
	// EventAlarmAbandoned fires when the AlarmInit state times out.
	EventAlarmAbandoned EventType = "ALARM_ABANDONED"
	// EventIndicatorOff fires when the indicator auto-off timeout elapses.
	EventIndicatorOff EventType = "INDICATOR_OFF"
)

// Event is a state change worth reporting outside the core. The wall-clock
// timestamp is stamped by the caller at publish time; the core only knows
// ticks.
type Event struct {
	Type  EventType
	At    tick.Tick
	Clock TimeOfDay
	Alarm TimeOfDay
	State DisplayState
}

// Counters tracks accepted and suppressed presses since startup.
type Counters struct {
	Accepted   int
	Suppressed int
}
