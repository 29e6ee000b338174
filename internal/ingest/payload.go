// Package ingest turns telemetry documents from the realtime and polled feeds
// into samples and appends them to the one authoritative history buffer.
package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"cooling_dashboard/internal/models"
)

// Payload is a telemetry document in either of the two shapes seen on the
// feeds: flat (temp_inside/temp_outside) or nested (temperatures.*.value).
// Pointers distinguish absent fields from zero values.
type Payload struct {
	TS           *float64      `json:"ts,omitempty"`
	TempInside   *float64      `json:"temp_inside,omitempty"`
	TempOutside  *float64      `json:"temp_outside,omitempty"`
	Temperatures *Temperatures `json:"temperatures,omitempty"`
}

// Temperatures is the nested probe group.
type Temperatures struct {
	Inside  *Probe `json:"inside,omitempty"`
	Outside *Probe `json:"outside,omitempty"`
}

// Probe is one nested reading.
type Probe struct {
	Value *float64 `json:"value,omitempty"`
	TS    *float64 `json:"ts,omitempty"`
}

// ParsePayload decodes a single document.
func ParsePayload(b []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Payload{}, fmt.Errorf("parse telemetry document: %w", err)
	}
	return p, nil
}

// ParsePayloads decodes a JSON array of documents.
func ParsePayloads(b []byte) ([]Payload, error) {
	var ps []Payload
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("parse telemetry array: %w", err)
	}
	return ps, nil
}

// Normalize extracts a sample. Flat values win over nested ones; a missing
// value becomes 0. The timestamp is the top-level ts, then the inside probe's
// ts, then now.
func Normalize(p Payload, now time.Time) models.TelemetrySample {
	s := models.TelemetrySample{Timestamp: now.Unix()}

	var nestedIn, nestedOut *Probe
	if p.Temperatures != nil {
		nestedIn, nestedOut = p.Temperatures.Inside, p.Temperatures.Outside
	}

	switch {
	case p.TempInside != nil:
		s.InsideTemp = *p.TempInside
	case nestedIn != nil && nestedIn.Value != nil:
		s.InsideTemp = *nestedIn.Value
	}
	switch {
	case p.TempOutside != nil:
		s.OutsideTemp = *p.TempOutside
	case nestedOut != nil && nestedOut.Value != nil:
		s.OutsideTemp = *nestedOut.Value
	}

	switch {
	case p.TS != nil:
		s.Timestamp = int64(*p.TS)
	case nestedIn != nil && nestedIn.TS != nil:
		s.Timestamp = int64(*nestedIn.TS)
	}
	return s
}
