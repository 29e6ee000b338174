package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDashboard_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadDashboard(t.TempDir(), "dashboard")
	if err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}
	if cfg.Capacity != 50 {
		t.Errorf("capacity: want 50, got %d", cfg.Capacity)
	}
	if cfg.Intervals.Poll != 5*time.Second || cfg.Intervals.Reconcile != 30*time.Second {
		t.Errorf("unexpected intervals: %+v", cfg.Intervals)
	}
	if cfg.Intervals.Weather != 30*time.Minute || cfg.Intervals.Clock != time.Minute {
		t.Errorf("unexpected display intervals: %+v", cfg.Intervals)
	}
	if cfg.ActuatorPath != "/api/actuator/state" {
		t.Errorf("actuator path: %q", cfg.ActuatorPath)
	}
}

func TestLoadDashboard_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dashboard.yml", `
port: "9000"
feed: none
capacity: 10
intervals:
  poll: 2s
`)
	cfg, err := LoadDashboard(dir, "dashboard")
	if err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}
	if cfg.Port != "9000" || cfg.Feed != FeedNone || cfg.Capacity != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Intervals.Poll != 2*time.Second {
		t.Fatalf("poll interval: %v", cfg.Intervals.Poll)
	}
}

func TestLoadDashboard_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad_feed":       "feed: carrier-pigeon\n",
		"zero_capacity":  "capacity: 0\n",
		"mqtt_no_broker": "feed: mqtt\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "dashboard.yml", body)
			if _, err := LoadDashboard(dir, "dashboard"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := LoadServer(t.TempDir(), "server")
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.HistoryLimit != 50 || cfg.DBPath != "iot.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MQTT.Enabled() {
		t.Fatalf("mqtt should be disabled by default")
	}
	if cfg.MQTT.SensorTopic != "cooling_system/sensor_data" {
		t.Fatalf("sensor topic: %q", cfg.MQTT.SensorTopic)
	}
}
