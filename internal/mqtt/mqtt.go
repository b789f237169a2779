// Package mqtt publishes timer telemetry with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// Topic is the MQTT topic for timer events.
const Topic = "home/kitchen-timer/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/kitchen-timer/system"

// Event is a timer event stamped with wall-clock time for publication.
type Event struct {
	Timestamp time.Time
	Type      logic.EventType
	Clock     logic.TimeOfDay
	Alarm     logic.TimeOfDay
	State     logic.DisplayState
	Indicator bool
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a timer event to the broker.
	// Returns error if publishing fails (must not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp time.Time
	Event     string // "STARTUP", "SHUTDOWN"
	Reason    string // e.g. "SIGTERM", "SIGINT" (shutdown only)
	Retained  bool   // whether the broker should retain the message
}

// Payload is the MQTT message envelope for a timer event.
type Payload struct {
	Timer TimerPayload `json:"timer"`
}

// TimerPayload contains the timer event details.
type TimerPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	State     string `json:"state"`
	Clock     string `json:"clock"`
	Alarm     string `json:"alarm"`
	Indicator bool   `json:"indicator"`
}

// FormatPayload creates the JSON payload for a timer event.
func FormatPayload(event Event) ([]byte, error) {
	payload := Payload{
		Timer: TimerPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			State:     string(event.State),
			Clock:     event.Clock.String(),
			Alarm:     event.Alarm.String(),
			Indicator: event.Indicator,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message envelope for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
