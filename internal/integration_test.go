package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/queue"
	"github.com/sweeney/kitchen-timer/internal/tick"
)

// rig wires the fake drivers to the real queue, debounce filter, and
// controller, and runs the control loop one simulated millisecond per
// iteration.
type rig struct {
	now tick.Tick

	q         *queue.Queue
	buttons   *gpio.FakeButtons
	deb       *logic.Debouncer
	ctl       *logic.Controller
	renderer  *display.FakeRenderer
	indicator *gpio.FakeIndicator
	pub       *mqtt.FakePublisher

	startWall time.Time
}

func newRig(start logic.TimeOfDay) *rig {
	r := &rig{
		q:         queue.New(),
		renderer:  display.NewFakeRenderer(),
		indicator: gpio.NewFakeIndicator(),
		pub:       mqtt.NewFakePublisher(),
		startWall: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	r.buttons = gpio.NewFakeButtons(func(b logic.Button) {
		r.q.Push(logic.ButtonPress{Button: b, At: r.now})
	})
	r.deb = logic.NewDebouncer(r.now)
	r.ctl = logic.NewController(start, r.now)
	return r
}

// iterate runs one loop iteration at the current tick: pop one press, filter
// it, step the controller, apply the outputs.
func (r *rig) iterate(t *testing.T) {
	t.Helper()

	var press *logic.ButtonPress
	if p, ok := r.q.Pop(); ok {
		if r.deb.Accept(p) {
			press = &p
		} else {
			r.ctl.CountSuppressed()
		}
	}

	out := r.ctl.Step(r.now, press)

	if out.Indicator != nil {
		if err := r.indicator.Set(*out.Indicator); err != nil {
			t.Fatalf("tick %d: indicator error: %v", r.now, err)
		}
	}
	if out.Render != nil {
		if err := r.renderer.RenderTime(out.Render.Time); err != nil {
			t.Fatalf("tick %d: render error: %v", r.now, err)
		}
	}
	for _, e := range out.Events {
		pub := mqtt.Event{
			Timestamp: r.startWall.Add(time.Duration(e.At) * time.Millisecond),
			Type:      e.Type,
			Clock:     e.Clock,
			Alarm:     e.Alarm,
			State:     e.State,
			Indicator: r.ctl.IndicatorOn(),
		}
		if err := r.pub.Publish(pub); err != nil {
			t.Fatalf("tick %d: publish error: %v", r.now, err)
		}
	}
}

// runUntil iterates every tick up to and including end, pressing the
// scheduled buttons at their ticks.
func (r *rig) runUntil(t *testing.T, end tick.Tick, presses map[tick.Tick]logic.Button) {
	t.Helper()
	for ; r.now <= end; r.now++ {
		if b, ok := presses[r.now]; ok {
			r.buttons.Press(b)
		}
		r.iterate(t)
	}
}

// TestIntegrationFullAlarmCycle drives the whole appliance through set,
// countdown, expiry, and indicator auto-off using the fake drivers.
func TestIntegrationFullAlarmCycle(t *testing.T) {
	r := newRig(logic.TimeOfDay{HH: 12, MM: 12})

	// Two increments, then let the countdown run out and the indicator
	// time out on its own.
	r.runUntil(t, 136000, map[tick.Tick]logic.Button{
		500: logic.Button2,
		800: logic.Button2,
	})

	// Renders: 0:01 and 0:02 on the presses, 0:01 when the countdown steps
	// at 60800, then the clock at expiry (the clock advanced twice by then).
	wantTimes := []logic.TimeOfDay{
		{HH: 0, MM: 1},
		{HH: 0, MM: 2},
		{HH: 0, MM: 1},
		{HH: 12, MM: 14},
	}
	if len(r.renderer.Times) != len(wantTimes) {
		t.Fatalf("renders: got %v, want %v", r.renderer.Times, wantTimes)
	}
	for i, want := range wantTimes {
		if r.renderer.Times[i] != want {
			t.Errorf("render %d: got %v, want %v", i, r.renderer.Times[i], want)
		}
	}

	wantEvents := []logic.EventType{
		logic.EventAlarmAdjusted,
		logic.EventAlarmAdjusted,
		logic.EventAlarmExpired,
		logic.EventIndicatorOff,
	}
	if len(r.pub.Events) != len(wantEvents) {
		t.Fatalf("events: got %d, want %d", len(r.pub.Events), len(wantEvents))
	}
	for i, want := range wantEvents {
		if r.pub.Events[i].Type != want {
			t.Errorf("event %d: got %s, want %s", i, r.pub.Events[i].Type, want)
		}
	}

	// Indicator: on at expiry (120800), off 15s later.
	wantLED := []bool{true, false}
	if len(r.indicator.History) != len(wantLED) {
		t.Fatalf("indicator history: got %v, want %v", r.indicator.History, wantLED)
	}

	if r.ctl.State() != logic.StateClock {
		t.Errorf("final state: got %s, want %s", r.ctl.State(), logic.StateClock)
	}
	if r.ctl.ClockTime() != (logic.TimeOfDay{HH: 12, MM: 14}) {
		t.Errorf("final clock: got %v, want 12:14", r.ctl.ClockTime())
	}
	if !r.ctl.AlarmTime().IsZero() {
		t.Errorf("final alarm: got %v, want 0:00", r.ctl.AlarmTime())
	}
}

// TestIntegrationClockOnly verifies a press-free run: only minute renders,
// no events.
func TestIntegrationClockOnly(t *testing.T) {
	r := newRig(logic.TimeOfDay{HH: 23, MM: 58})

	r.runUntil(t, 3*60000, nil)

	wantTimes := []logic.TimeOfDay{
		{HH: 23, MM: 59},
		{HH: 0, MM: 0},
		{HH: 0, MM: 1},
	}
	if len(r.renderer.Times) != len(wantTimes) {
		t.Fatalf("renders: got %v, want %v", r.renderer.Times, wantTimes)
	}
	for i, want := range wantTimes {
		if r.renderer.Times[i] != want {
			t.Errorf("render %d: got %v, want %v", i, r.renderer.Times[i], want)
		}
	}
	if len(r.pub.Events) != 0 {
		t.Errorf("expected no events, got %v", r.pub.Events)
	}
	if len(r.indicator.History) != 0 {
		t.Errorf("expected no indicator transitions, got %v", r.indicator.History)
	}
	if r.q.Drops() != 0 {
		t.Errorf("queue drops: got %d, want 0", r.q.Drops())
	}
}

// TestIntegrationContactBounce verifies that a bounce train on a button
// registers exactly once.
func TestIntegrationContactBounce(t *testing.T) {
	r := newRig(logic.TimeOfDay{HH: 12, MM: 12})

	r.runUntil(t, 2000, map[tick.Tick]logic.Button{
		500: logic.Button2,
		530: logic.Button2,
		560: logic.Button2,
		640: logic.Button2,
	})

	if got := r.ctl.AlarmTime(); got != (logic.TimeOfDay{HH: 0, MM: 1}) {
		t.Errorf("alarm after bounce train: got %v, want 0:01", got)
	}
	c := r.ctl.Counters()
	if c.Accepted != 1 {
		t.Errorf("accepted: got %d, want 1", c.Accepted)
	}
	if c.Suppressed != 3 {
		t.Errorf("suppressed: got %d, want 3", c.Suppressed)
	}
}

// TestIntegrationQueueOverflow floods the queue from the button side and
// verifies the overflow is dropped, counted, and harmless.
func TestIntegrationQueueOverflow(t *testing.T) {
	r := newRig(logic.TimeOfDay{HH: 12, MM: 12})
	r.now = 500

	for i := 0; i < queue.Capacity+10; i++ {
		r.buttons.Press(logic.Button1)
	}
	if r.q.Drops() != 10 {
		t.Fatalf("drops: got %d, want 10", r.q.Drops())
	}

	// Drain: one press per iteration. All presses carry the same tick, so
	// debounce accepts only the first.
	r.runUntil(t, 500+tick.Tick(queue.Capacity), nil)

	if r.q.Len() != 0 {
		t.Errorf("queue not drained: %d left", r.q.Len())
	}
	c := r.ctl.Counters()
	if c.Accepted != 1 {
		t.Errorf("accepted: got %d, want 1", c.Accepted)
	}
	if c.Suppressed != queue.Capacity-1 {
		t.Errorf("suppressed: got %d, want %d", c.Suppressed, queue.Capacity-1)
	}
	if r.ctl.State() != logic.StateAlarmInit {
		t.Errorf("state: got %s, want %s", r.ctl.State(), logic.StateAlarmInit)
	}
}

// TestIntegrationPayloadFormat verifies the exact JSON structure.
func TestIntegrationPayloadFormat(t *testing.T) {
	event := mqtt.Event{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		Type:      logic.EventAlarmExpired,
		Clock:     logic.TimeOfDay{HH: 12, MM: 13},
		Alarm:     logic.TimeOfDay{},
		State:     logic.StateClock,
		Indicator: true,
	}

	publisher := mqtt.NewFakePublisher()
	publisher.Publish(event)

	expected := `{"timer":{"timestamp":"2026-02-02T22:18:12Z","event":"ALARM_EXPIRED","state":"CLOCK","clock":"12:13","alarm":"0:00","indicator":true}}`

	if string(publisher.Payloads[0]) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", string(publisher.Payloads[0]), expected)
	}
}

// TestIntegrationShutdownPayloadFormat verifies the exact JSON structure for
// shutdown events.
func TestIntegrationShutdownPayloadFormat(t *testing.T) {
	publisher := mqtt.NewFakePublisher()

	event := mqtt.SystemEvent{
		Timestamp: time.Date(2026, 2, 3, 10, 30, 45, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}
	publisher.PublishSystem(event)

	expected := `{"system":{"timestamp":"2026-02-03T10:30:45Z","event":"SHUTDOWN","reason":"SIGTERM"}}`

	if string(publisher.SystemPayloads[0]) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", string(publisher.SystemPayloads[0]), expected)
	}
}

// TestIntegrationStartupPayloadOmitsReason verifies startup events have no
// reason field.
func TestIntegrationStartupPayloadOmitsReason(t *testing.T) {
	publisher := mqtt.NewFakePublisher()

	publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp: time.Date(2026, 2, 3, 19, 5, 51, 0, time.UTC),
		Event:     "STARTUP",
		Retained:  true,
	})

	expected := `{"system":{"timestamp":"2026-02-03T19:05:51Z","event":"STARTUP"}}`

	if string(publisher.SystemPayloads[0]) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", string(publisher.SystemPayloads[0]), expected)
	}
}

// TestIntegrationLifecycleOrder verifies startup, timer events, shutdown
// arrive in order on their topics.
func TestIntegrationLifecycleOrder(t *testing.T) {
	publisher := mqtt.NewFakePublisher()

	if err := publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp: time.Date(2026, 2, 3, 19, 5, 51, 0, time.UTC),
		Event:     "STARTUP",
		Retained:  true,
	}); err != nil {
		t.Fatalf("startup publish error: %v", err)
	}

	if err := publisher.Publish(mqtt.Event{
		Timestamp: time.Date(2026, 2, 3, 19, 6, 0, 0, time.UTC),
		Type:      logic.EventAlarmAdjusted,
		Clock:     logic.TimeOfDay{HH: 12, MM: 12},
		Alarm:     logic.TimeOfDay{HH: 0, MM: 1},
		State:     logic.StateAlarm,
	}); err != nil {
		t.Fatalf("timer publish error: %v", err)
	}

	if err := publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp: time.Date(2026, 2, 3, 19, 10, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
		Retained:  true,
	}); err != nil {
		t.Fatalf("shutdown publish error: %v", err)
	}

	if len(publisher.SystemEvents) != 2 {
		t.Fatalf("expected 2 system events, got %d", len(publisher.SystemEvents))
	}
	if publisher.SystemEvents[0].Event != "STARTUP" || publisher.SystemEvents[1].Event != "SHUTDOWN" {
		t.Errorf("system event order: got %s, %s", publisher.SystemEvents[0].Event, publisher.SystemEvents[1].Event)
	}
	if len(publisher.Events) != 1 {
		t.Fatalf("expected 1 timer event, got %d", len(publisher.Events))
	}

	var parsed mqtt.SystemPayload
	if err := json.Unmarshal(publisher.SystemPayloads[1], &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("payload reason: expected SIGTERM, got %s", parsed.System.Reason)
	}
}
