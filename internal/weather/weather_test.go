package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cooling_dashboard/internal/remote"
)

const currentJSON = `{
  "name": "Hanoi", "dt": 1700000000,
  "main": {"temp": 28.26, "feels_like": 30.54, "humidity": 70},
  "weather": [{"description": "few clouds", "icon": "02d"}]
}`

func TestClient_Current(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(currentJSON))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Lat: 21.0285, Lon: 105.8542, Lang: "vi"}, remote.New(srv.URL, nil))
	w, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if w.Temperature != 28.3 || w.FeelsLike != 30.5 || w.Humidity != 70 || w.Location != "Hanoi" || w.Icon != "02d" {
		t.Fatalf("formatted: %+v", w)
	}
	for _, want := range []string{"appid=k", "units=metric", "lang=vi", "lat=21.0285"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestFormatForecast_OnePerDayMaxFive(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var raw owmForecast
	raw.City.Name = "Hanoi"
	// 3-hour steps over seven days
	for i := 0; i < 7*8; i++ {
		ts := start.Add(time.Duration(i) * 3 * time.Hour)
		raw.List = append(raw.List, owmForecastItem{
			Dt:      ts.Unix(),
			DtTxt:   ts.Format("2006-01-02 15:04:05"),
			Main:    owmMain{Temp: float64(20 + i%8)},
			Weather: []owmCondition{{Description: "d", Icon: "01d"}},
		})
	}

	f := formatForecast(raw, time.UTC)
	if f.Location != "Hanoi" || len(f.Forecasts) != 5 {
		t.Fatalf("got %d days for %q", len(f.Forecasts), f.Location)
	}
	if f.Forecasts[0].Date != "2025-06-01" || f.Forecasts[0].DayName != "Sun" {
		t.Fatalf("first day: %+v", f.Forecasts[0])
	}
	for i := 1; i < len(f.Forecasts); i++ {
		if f.Forecasts[i].Date == f.Forecasts[i-1].Date {
			t.Fatalf("duplicate day %s", f.Forecasts[i].Date)
		}
	}
}

func TestService_FallsBackToMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewService(NewClient(Config{APIKey: "bad"}, remote.New(srv.URL, nil)), nil)
	if w := s.Current(context.Background()); w.Location != "Home" {
		t.Fatalf("expected mock on upstream failure, got %+v", w)
	}
	if f := s.Forecast(context.Background()); len(f.Forecasts) != 3 {
		t.Fatalf("expected mock forecast, got %+v", f)
	}

	mockOnly := NewService(nil, nil)
	if w := mockOnly.Current(context.Background()); w.Temperature != 28.2 {
		t.Fatalf("mock current: %+v", w)
	}
}

func TestMockForecast_StartsTomorrow(t *testing.T) {
	now := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	f := MockForecast(now)
	if f.Forecasts[0].Date != "2026-02-04" || f.Forecasts[0].DayName != "Wed" {
		t.Fatalf("first mock day: %+v", f.Forecasts[0])
	}
}
