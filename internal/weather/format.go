// Package weather reads current conditions and the daily forecast from
// OpenWeatherMap and shapes them for the dashboard widgets.
package weather

import (
	"math"
	"strings"
	"time"

	"cooling_dashboard/internal/models"
)

const maxForecastDays = 5

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type owmCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// owmCurrent is the subset of /weather we use.
type owmCurrent struct {
	Name    string         `json:"name"`
	Dt      int64          `json:"dt"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
}

type owmForecastItem struct {
	Dt      int64          `json:"dt"`
	DtTxt   string         `json:"dt_txt"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
}

// owmForecast is the subset of /forecast (3-hour steps) we use.
type owmForecast struct {
	List []owmForecastItem `json:"list"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func firstCondition(cs []owmCondition) owmCondition {
	if len(cs) == 0 {
		return owmCondition{}
	}
	return cs[0]
}

func formatCurrent(raw owmCurrent) models.CurrentWeather {
	c := firstCondition(raw.Weather)
	return models.CurrentWeather{
		Temperature: round1(raw.Main.Temp),
		FeelsLike:   round1(raw.Main.FeelsLike),
		Humidity:    raw.Main.Humidity,
		Description: c.Description,
		Icon:        c.Icon,
		Location:    raw.Name,
		Timestamp:   raw.Dt,
	}
}

// formatForecast keeps one entry per calendar day in loc, at most five. A day
// is taken at its noon step, or at its first step while fewer than five days
// have been collected.
func formatForecast(raw owmForecast, loc *time.Location) models.Forecast {
	out := models.Forecast{Location: raw.City.Name, Forecasts: []models.DailyForecast{}}
	seen := make(map[string]bool)
	for _, item := range raw.List {
		dt := time.Unix(item.Dt, 0).In(loc)
		date := dt.Format("2006-01-02")
		if !seen[date] && (strings.Contains(item.DtTxt, "12:00:00") || len(seen) < maxForecastDays) {
			seen[date] = true
			c := firstCondition(item.Weather)
			out.Forecasts = append(out.Forecasts, models.DailyForecast{
				Date:        date,
				DayName:     dt.Format("Mon"),
				Temperature: round1(item.Main.Temp),
				Description: c.Description,
				Icon:        c.Icon,
			})
		}
		if len(out.Forecasts) >= maxForecastDays {
			break
		}
	}
	return out
}

// MockCurrent is served when no API key is configured.
func MockCurrent(now time.Time) models.CurrentWeather {
	return models.CurrentWeather{
		Temperature: 28.2,
		FeelsLike:   30.5,
		Humidity:    65,
		Description: "Clear, night",
		Icon:        "01n",
		Location:    "Home",
		Timestamp:   now.Unix(),
	}
}

// MockForecast returns three days starting tomorrow.
func MockForecast(now time.Time) models.Forecast {
	days := []struct {
		temp        float64
		description string
		icon        string
	}{
		{21, "Clear", "01d"},
		{25, "Cloudy", "04d"},
		{22, "Clear", "01d"},
	}
	out := models.Forecast{Location: "Home"}
	for i, d := range days {
		day := now.AddDate(0, 0, i+1)
		out.Forecasts = append(out.Forecasts, models.DailyForecast{
			Date:        day.Format("2006-01-02"),
			DayName:     day.Format("Mon"),
			Temperature: d.temp,
			Description: d.description,
			Icon:        d.icon,
		})
	}
	return out
}
