package logic

import "github.com/sweeney/kitchen-timer/internal/tick"

// Controller is the three-state display/alarm state machine plus its timer
// bank. It owns the clock time, the alarm time, the indicator flag, and the
// four reference ticks that drive clock advance, alarm countdown, AlarmInit
// expiry, and indicator auto-off. All mutation happens in Step, from the
// main loop only.
type Controller struct {
	state DisplayState
	clock TimeOfDay
	alarm TimeOfDay

	indicatorOn    bool
	indicatorSince tick.Tick

	clockRef tick.Tick // last clock advance
	alarmRef tick.Tick // last alarm countdown step or adjustment
	initRef  tick.Tick // AlarmInit entry/restart

	counters Counters
}

// Render is a request to show a time on the display.
type Render struct {
	Time TimeOfDay
}

// Output is everything one Step asks the outside world to do. At most one
// render per step; Indicator is non-nil only when the indicator changed.
type Output struct {
	Render    *Render
	Indicator *bool
	Events    []Event
}

// NewController starts in the Clock state showing start, with all timer
// references armed at now.
func NewController(start TimeOfDay, now tick.Tick) *Controller {
	return &Controller{
		state:    StateClock,
		clock:    start,
		clockRef: now,
	}
}

// Step runs one iteration of the control core: at most one accepted press,
// then (only if there was no press) the elapsed-timer checks, then the
// clock-advance check, which runs every iteration. Timeouts are passive
// comparisons; re-arming a reference before its threshold is checked is how
// a timer is "cancelled".
func (c *Controller) Step(now tick.Tick, press *ButtonPress) Output {
	var out Output

	switch {
	case press != nil && press.Button == Button2:
		c.counters.Accepted++
		c.pressIncrement(now, &out)
	case press != nil && press.Button == Button1:
		c.counters.Accepted++
		c.pressSelect(now, &out)
	case press != nil:
		// Unrecognized button: deliberate no-op, not an error.
	default:
		c.checkTimers(now, &out)
	}

	c.checkClockAdvance(now, &out)
	return out
}

// pressIncrement handles Button2: from any state, silence the indicator,
// bump the alarm, and (re)start the countdown.
func (c *Controller) pressIncrement(now tick.Tick, out *Output) {
	if c.indicatorOn {
		c.setIndicator(false, now, out)
	}
	c.state = StateAlarm
	c.alarm = c.alarm.Advance()
	c.alarmRef = now
	c.render(c.alarm, out)
	c.emit(EventAlarmAdjusted, now, out)
}

// pressSelect handles Button1. Silencing the indicator is strictly its first
// role: an indicator-on press is absorbed with no render and no other state
// change. Otherwise the press arms the AlarmInit timeout (alarm at 0:00),
// decrements a running countdown, or restarts the AlarmInit timeout.
func (c *Controller) pressSelect(now tick.Tick, out *Output) {
	if c.indicatorOn {
		c.setIndicator(false, now, out)
		c.emit(EventAlarmSilenced, now, out)
		return
	}

	switch {
	case c.alarm.IsZero():
		c.state = StateAlarmInit
		c.initRef = now
	case c.state == StateAlarm:
		c.alarm = c.alarm.Retreat()
		if c.alarm.IsZero() {
			c.state = StateAlarmInit
			c.initRef = now
		} else {
			c.alarmRef = now
		}
		c.emit(EventAlarmAdjusted, now, out)
	}
	c.render(c.alarm, out)
}

// checkTimers evaluates the elapsed-timer conditions for an iteration that
// consumed no press. The display state gates which countdown is live, so the
// AlarmInit timeout and the alarm countdown are mutually exclusive.
func (c *Controller) checkTimers(now tick.Tick, out *Output) {
	if c.state == StateAlarmInit && tick.Elapsed(now, c.initRef, AlarmInitTicks) {
		c.state = StateClock
		c.render(c.clock, out)
		c.emit(EventAlarmAbandoned, now, out)
	}

	if c.state == StateAlarm && tick.Elapsed(now, c.alarmRef, MinuteTicks) {
		c.alarm = c.alarm.Retreat()
		if c.alarm.IsZero() {
			c.state = StateClock
			c.setIndicator(true, now, out)
			c.render(c.clock, out)
			c.emit(EventAlarmExpired, now, out)
		} else {
			c.alarmRef = now
			c.render(c.alarm, out)
		}
	}

	if c.indicatorOn && tick.Elapsed(now, c.indicatorSince, IndicatorOnTicks) {
		c.setIndicator(false, now, out)
		c.emit(EventIndicatorOff, now, out)
	}
}

// checkClockAdvance runs every iteration, after everything else. The
// reference re-arms to now, not to ref+MinuteTicks, so minute boundaries
// drift by loop latency.
func (c *Controller) checkClockAdvance(now tick.Tick, out *Output) {
	if !tick.Elapsed(now, c.clockRef, MinuteTicks) {
		return
	}
	c.clockRef = now
	c.clock = c.clock.Advance()
	if c.state == StateClock {
		// Overwrites any clock render from earlier in the step so the
		// single render of this iteration carries the advanced time.
		c.render(c.clock, out)
	}
}

func (c *Controller) setIndicator(on bool, now tick.Tick, out *Output) {
	c.indicatorOn = on
	if on {
		c.indicatorSince = now
	}
	v := on
	out.Indicator = &v
}

func (c *Controller) render(t TimeOfDay, out *Output) {
	out.Render = &Render{Time: t}
}

func (c *Controller) emit(typ EventType, now tick.Tick, out *Output) {
	out.Events = append(out.Events, Event{
		Type:  typ,
		At:    now,
		Clock: c.clock,
		Alarm: c.alarm,
		State: c.state,
	})
}

// State returns the current display state.
func (c *Controller) State() DisplayState { return c.state }

// ClockTime returns the free-running wall-clock time.
func (c *Controller) ClockTime() TimeOfDay { return c.clock }

// AlarmTime returns the current alarm countdown value.
func (c *Controller) AlarmTime() TimeOfDay { return c.alarm }

// IndicatorOn reports whether the indicator is lit.
func (c *Controller) IndicatorOn() bool { return c.indicatorOn }

// Counters returns accepted/suppressed press counts. The suppressed count
// is maintained by the caller via CountSuppressed, since suppression happens
// in the debounce filter before Step sees the press.
func (c *Controller) Counters() Counters { return c.counters }

// CountSuppressed records one debounce-suppressed press.
func (c *Controller) CountSuppressed() { c.counters.Suppressed++ }
