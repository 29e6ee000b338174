// Package publish pushes telemetry and actuator commands to the realtime
// channel that subscribers (dashboards, devices) listen on.
package publish

import (
	"encoding/json"
	"maps"
	"time"

	"cooling_dashboard/internal/models"
)

// Default topics of the realtime channel.
const (
	TopicSensor   = "cooling_system/sensor_data"
	TopicCommands = "cooling_system/actuator_cmds"
)

// Publisher sends realtime messages. Errors are reported to the caller and
// never affect the persisted state.
type Publisher interface {
	PublishTelemetry(t models.DeviceTelemetry) error
	PublishCommand(typ string, details map[string]any) error
	Close() error
}

// FormatTelemetry encodes a device document; a zero timestamp is set to now.
func FormatTelemetry(t models.DeviceTelemetry, now time.Time) ([]byte, error) {
	if t.Timestamp == 0 {
		t.Timestamp = now.Unix()
	}
	return json.Marshal(t)
}

// FormatCommand encodes {"type":..., "ts":..., ...details}. type and ts win
// over keys of the same name in details.
func FormatCommand(typ string, details map[string]any, now time.Time) ([]byte, error) {
	payload := make(map[string]any, len(details)+2)
	maps.Copy(payload, details)
	payload["type"] = typ
	payload["ts"] = now.Unix()
	return json.Marshal(payload)
}

// Nop discards every message. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishTelemetry(models.DeviceTelemetry) error { return nil }
func (Nop) PublishCommand(string, map[string]any) error   { return nil }
func (Nop) Close() error                                  { return nil }
