package automation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"
)

func TestClient_SettingsAndUpdates(t *testing.T) {
	current := models.DefaultAutomationSettings()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathSettings:
			_ = json.NewEncoder(w).Encode(current)
		case PathManual:
			var in models.ManualSettings
			_ = json.NewDecoder(r.Body).Decode(&in)
			current.IsOn, current.TargetTemp, current.Mode = in.IsOn, in.TargetTemp, in.Mode
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "settings": current})
		case PathAutomation:
			var in models.AutomationRule
			_ = json.NewDecoder(r.Body).Decode(&in)
			current.AutomationEnabled, current.ThresholdTemp = in.AutomationEnabled, in.ThresholdTemp
			_ = json.NewEncoder(w).Encode(current)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(remote.New(srv.URL, nil))
	ctx := context.Background()

	got, err := c.Settings(ctx)
	if err != nil || got.Mode != models.ClimateCool || got.ThresholdTemp != 25 {
		t.Fatalf("Settings: %+v, %v", got, err)
	}

	got, err = c.SetManual(ctx, models.ManualSettings{IsOn: true, TargetTemp: 21, Mode: models.ClimateFan})
	if err != nil || !got.IsOn || got.Mode != models.ClimateFan {
		t.Fatalf("SetManual (wrapped): %+v, %v", got, err)
	}

	got, err = c.SetAutomation(ctx, models.AutomationRule{AutomationEnabled: true, ThresholdTemp: 27})
	if err != nil || !got.AutomationEnabled || got.ThresholdTemp != 27 {
		t.Fatalf("SetAutomation (bare): %+v, %v", got, err)
	}
}
