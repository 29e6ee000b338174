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

func TestClimateHandlers_GetSettings(t *testing.T) {
	cl := &mockClimate{settings: models.DefaultAutomationSettings()}
	r := newTestRouter(&service.Service{Climate: cl})

	w := doJSON(r, http.MethodGet, "/api/ac/settings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var st models.AutomationSettings
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.Mode != models.ClimateCool || st.TargetTemp != 22 || st.ThresholdTemp != 25 {
		t.Fatalf("unexpected settings: %+v", st)
	}

	cl.err = errors.New("db down")
	if w := doJSON(r, http.MethodGet, "/api/ac/settings", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestClimateHandlers_Manual(t *testing.T) {
	cl := &mockClimate{settings: models.DefaultAutomationSettings()}
	r := newTestRouter(&service.Service{Climate: cl})

	w := doJSON(r, http.MethodPost, "/api/ac/manual", `{"is_on":true,"target_temp":19.5,"mode":"heat"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cl.lastManual != (models.ManualSettings{IsOn: true, TargetTemp: 19.5, Mode: "heat"}) {
		t.Fatalf("unexpected manual settings: %+v", cl.lastManual)
	}
	var resp struct {
		Status   string                    `json:"status"`
		Settings models.AutomationSettings `json:"settings"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusOK || !resp.Settings.IsOn || resp.Settings.TargetTemp != 19.5 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// empty body object takes factory target and mode
	w = doJSON(r, http.MethodPost, "/api/ac/manual", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cl.lastManual != (models.ManualSettings{TargetTemp: models.DefaultTargetTemp, Mode: models.ClimateCool}) {
		t.Fatalf("defaults not applied: %+v", cl.lastManual)
	}
}

func TestClimateHandlers_Automation(t *testing.T) {
	cl := &mockClimate{settings: models.DefaultAutomationSettings()}
	r := newTestRouter(&service.Service{Climate: cl})

	w := doJSON(r, http.MethodPost, "/api/ac/automation", `{"automation_enabled":true,"threshold_temp":28}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cl.lastAutomation != (models.AutomationRule{AutomationEnabled: true, ThresholdTemp: 28}) {
		t.Fatalf("unexpected rule: %+v", cl.lastAutomation)
	}

	w = doJSON(r, http.MethodPost, "/api/ac/automation", `{"automation_enabled":false}`)
	if w.Code != http.StatusOK || cl.lastAutomation.ThresholdTemp != models.DefaultThresholdTemp {
		t.Fatalf("default threshold not applied: %d %+v", w.Code, cl.lastAutomation)
	}
}

func TestClimateHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"manual bad json", "/api/ac/manual", `{"is_on":"yes"}`, nil, http.StatusBadRequest},
		{"manual validation", "/api/ac/manual", `{"target_temp":40}`, fmt.Errorf("%w: range", service.ErrValidation), http.StatusBadRequest},
		{"automation storage", "/api/ac/automation", `{"threshold_temp":25}`, errors.New("locked"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Climate: &mockClimate{err: c.svcErr}})
			if w := doJSON(r, http.MethodPost, c.path, c.body); w.Code != c.wantCode {
				t.Fatalf("got %d, want %d, body=%s", w.Code, c.wantCode, w.Body.String())
			}
		})
	}
}
