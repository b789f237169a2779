package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/kitchen-timer/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Clock         string      `json:"clock"`
	Alarm         string      `json:"alarm"`
	State         string      `json:"state"`
	Indicator     bool        `json:"indicator"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Presses       PressesJSON `json:"presses"`
	Loop          LoopJSON    `json:"loop"`
	Config        ConfigJSON  `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// PressesJSON is the JSON representation of button press counters.
type PressesJSON struct {
	Accepted   int    `json:"accepted"`
	Suppressed int    `json:"suppressed"`
	QueueDrops uint64 `json:"queue_drops"`
}

// LoopJSON reports main-loop liveness.
type LoopJSON struct {
	Iterations uint64 `json:"iterations"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs     int64  `json:"tick_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
	Serial     string `json:"serial,omitempty"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			Clock:         snap.Clock.String(),
			Alarm:         snap.Alarm.String(),
			State:         string(snap.State),
			Indicator:     snap.Indicator,
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
			Presses: PressesJSON{
				Accepted:   snap.Presses.Accepted,
				Suppressed: snap.Presses.Suppressed,
				QueueDrops: snap.QueueDrops,
			},
			Loop: LoopJSON{Iterations: snap.Iterations},
			Config: ConfigJSON{
				TickMs:     snap.Config.TickMs,
				DebounceMs: snap.Config.DebounceMs,
				Broker:     snap.Config.Broker,
				HTTPAddr:   snap.Config.HTTPAddr,
				Serial:     snap.Config.Serial,
			},
		},
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
