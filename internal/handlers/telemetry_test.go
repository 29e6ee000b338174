package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/service"
)

const deviceBody = `{
	"device_id": "ESP32_001",
	"interval_s": 5,
	"unit": "C",
	"ts": 1700000000,
	"temperatures": {
		"inside":  {"sensor_id": "DHT22_IN",  "value": 23.5},
		"outside": {"sensor_id": "DHT22_OUT", "value": 31.2}
	}
}`

func TestTelemetryHandlers_Post(t *testing.T) {
	tel := &mockTelemetry{id: 42}
	r := newTestRouter(&service.Service{Telemetry: tel})

	w := doJSON(r, http.MethodPost, "/api/telemetry", deviceBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		ID     int64  `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusOK || resp.ID != 42 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	d := tel.lastDoc
	if d.DeviceID != "ESP32_001" || d.Timestamp != 1700000000 || d.Temperatures.Inside.Value != 23.5 || d.Temperatures.Outside.SensorID != "DHT22_OUT" {
		t.Fatalf("unexpected document: %+v", d)
	}
}

func TestTelemetryHandlers_Post_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"malformed", `{"device_id":`, nil, http.StatusBadRequest},
		{"validation", deviceBody, fmt.Errorf("%w: device_id is required", service.ErrValidation), http.StatusBadRequest},
		{"storage", deviceBody, errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Telemetry: &mockTelemetry{err: c.svcErr}})
			if w := doJSON(r, http.MethodPost, "/api/telemetry", c.body); w.Code != c.wantCode {
				t.Fatalf("got %d, want %d, body=%s", w.Code, c.wantCode, w.Body.String())
			}
		})
	}
}

func TestTelemetryHandlers_Data(t *testing.T) {
	mon := &mockMonitoring{}
	r := newTestRouter(&service.Service{Monitoring: mon})

	// empty store serializes as an empty array
	w := doJSON(r, http.MethodGet, "/api/data", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	mon.history = []models.TelemetryRecord{
		{ID: 2, Timestamp: 200, TempInside: 21, TempOutside: 30},
		{ID: 1, Timestamp: 100, TempInside: 20, TempOutside: 29},
	}
	w = doJSON(r, http.MethodGet, "/api/data", "")
	var out []models.TelemetryRecord
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].Timestamp != 200 || out[1].Timestamp != 100 {
		t.Fatalf("expected newest first, got %+v", out)
	}

	mon.err = errors.New("db down")
	if w := doJSON(r, http.MethodGet, "/api/data", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
