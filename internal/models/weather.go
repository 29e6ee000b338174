package models

// CurrentWeather is the display-ready current conditions.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Location    string  `json:"location"`
	Timestamp   int64   `json:"timestamp"`
}

// DailyForecast is one forecast day.
type DailyForecast struct {
	Date        string  `json:"date"`
	DayName     string  `json:"day_name"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Forecast is up to five daily forecasts for a location.
type Forecast struct {
	Location  string          `json:"location"`
	Forecasts []DailyForecast `json:"forecasts"`
}

// ServerClock is the backend's notion of the current date and time.
type ServerClock struct {
	Timestamp int64  `json:"timestamp"`
	Datetime  string `json:"datetime"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Weekday   string `json:"weekday"`
}
