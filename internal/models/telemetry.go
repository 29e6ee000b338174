package models

import "time"

// TelemetrySample is one timestamped inside/outside temperature reading.
// Values are never mutated after ingestion.
type TelemetrySample struct {
	Timestamp   int64   `json:"ts"`           // seconds since epoch
	InsideTemp  float64 `json:"temp_inside"`  // °C
	OutsideTemp float64 `json:"temp_outside"` // °C
}

// Time returns the sample timestamp as a UTC time.
func (s TelemetrySample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// TelemetryRecord is a persisted reading as stored and served by the backend.
type TelemetryRecord struct {
	ID          int64     `json:"id"`
	DeviceID    string    `json:"device_id"`
	Unit        string    `json:"unit"`
	Timestamp   int64     `json:"ts"`
	TempInside  float64   `json:"temp_inside"`
	TempOutside float64   `json:"temp_outside"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sample projects the record onto the client-side sample shape.
func (r TelemetryRecord) Sample() TelemetrySample {
	return TelemetrySample{Timestamp: r.Timestamp, InsideTemp: r.TempInside, OutsideTemp: r.TempOutside}
}

// SensorReading is one probe inside a device telemetry document.
type SensorReading struct {
	SensorID string  `json:"sensor_id"`
	Value    float64 `json:"value"`
}

// DeviceTemperatures groups the two probes of a device document.
type DeviceTemperatures struct {
	Inside  SensorReading `json:"inside"`
	Outside SensorReading `json:"outside"`
}

// DeviceTelemetry is the nested document a sensor device posts to the backend.
type DeviceTelemetry struct {
	DeviceID     string             `json:"device_id"`
	IntervalS    int                `json:"interval_s"`
	Unit         string             `json:"unit"`
	Timestamp    int64              `json:"ts"`
	Temperatures DeviceTemperatures `json:"temperatures"`
}
