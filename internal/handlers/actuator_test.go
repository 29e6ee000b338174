package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doJSON(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("health status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestActuatorHandlers_GetState(t *testing.T) {
	act := &mockActuator{state: models.ActuatorRecord{
		ActuatorDesiredState: models.ActuatorDesiredState{ModeRequest: models.ModeAuto, AC: true, TempThreshold: 26, Source: "web_client"},
		UpdatedAt:            time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}}
	r := newTestRouter(&service.Service{Actuator: act})

	w := doJSON(r, http.MethodGet, "/api/actuator/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if raw["mode_request"] != "auto" || raw["ac"] != float64(1) || raw["fan"] != float64(0) || raw["temp_threshold"] != float64(26) {
		t.Fatalf("unexpected wire shape: %v", raw)
	}
	if _, ok := raw["last_updated"]; !ok {
		t.Fatalf("last_updated missing: %v", raw)
	}

	act.getErr = errors.New("db down")
	w = doJSON(r, http.MethodGet, "/api/actuator/state", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestActuatorHandlers_PostState(t *testing.T) {
	act := &mockActuator{}
	r := newTestRouter(&service.Service{Actuator: act})

	w := doJSON(r, http.MethodPost, "/api/actuator/state", `{"mode_request":"ai","ac":true,"fan":0,"end_user_ai_instruction":"quiet at night"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("post status=%d, body=%s", w.Code, w.Body.String())
	}
	if act.updates != 1 {
		t.Fatalf("expected one update, got %d", act.updates)
	}
	got := act.lastUpdate
	if got.ModeRequest != models.ModeAI || !bool(got.AC) || bool(got.Fan) || got.AdvisoryText != "quiet at night" {
		t.Fatalf("unexpected state passed: %+v", got)
	}
	if got.TempThreshold != models.DefaultTempThreshold {
		t.Fatalf("absent threshold should default, got %v", got.TempThreshold)
	}

	var resp struct {
		Status   string         `json:"status"`
		APIState map[string]any `json:"api_state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != statusOK || resp.APIState["mode_request"] != "ai" || resp.APIState["ac"] != float64(1) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestActuatorHandlers_PostState_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantCall bool
	}{
		{"malformed json", `{"mode_request":`, nil, http.StatusBadRequest, false},
		{"bad switch value", `{"mode_request":"manual","ac":"on"}`, nil, http.StatusBadRequest, false},
		{"validation", `{"mode_request":"turbo"}`, fmt.Errorf("%w: bad mode", service.ErrValidation), http.StatusBadRequest, true},
		{"storage", `{"mode_request":"manual"}`, errors.New("locked"), http.StatusInternalServerError, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			act := &mockActuator{updateErr: c.svcErr}
			r := newTestRouter(&service.Service{Actuator: act})
			w := doJSON(r, http.MethodPost, "/api/actuator/state", c.body)
			if w.Code != c.wantCode {
				t.Fatalf("got %d, want %d, body=%s", w.Code, c.wantCode, w.Body.String())
			}
			if (act.updates == 1) != c.wantCall {
				t.Fatalf("service called=%v, want %v", act.updates == 1, c.wantCall)
			}
		})
	}
}
