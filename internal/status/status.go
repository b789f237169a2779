// Package status provides a thread-safe status tracker for the kitchen-timer
// daemon. The main loop writes it every iteration; HTTP handlers read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs     int64
	DebounceMs int64
	Broker     string
	HTTPAddr   string
	Serial     string // serial display device ("" = stdout)
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Clock         logic.TimeOfDay
	Alarm         logic.TimeOfDay
	State         logic.DisplayState
	Indicator     bool
	Presses       logic.Counters
	QueueDrops    uint64
	Iterations    uint64
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.StateClock,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the controller-owned fields. Called from the main loop on
// every iteration; each call counts one loop iteration.
func (t *Tracker) Update(clock, alarm logic.TimeOfDay, state logic.DisplayState, indicator bool, presses logic.Counters, drops uint64) {
	t.mu.Lock()
	t.snap.Iterations++
	t.snap.Clock = clock
	t.snap.Alarm = alarm
	t.snap.State = state
	t.snap.Indicator = indicator
	t.snap.Presses = presses
	t.snap.QueueDrops = drops
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
