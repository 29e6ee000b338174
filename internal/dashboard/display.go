package dashboard

import (
	"context"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"
)

// Display-only backend endpoints.
const (
	PathWeatherCurrent  = "/api/weather/current"
	PathWeatherForecast = "/api/weather/forecast"
	PathDatetime        = "/api/datetime"
)

// DisplayClient reads the weather and clock widgets from the backend.
type DisplayClient struct {
	api *remote.Client
}

func NewDisplayClient(api *remote.Client) *DisplayClient {
	return &DisplayClient{api: api}
}

func (c *DisplayClient) CurrentWeather(ctx context.Context) (models.CurrentWeather, error) {
	var w models.CurrentWeather
	err := c.api.GetJSON(ctx, PathWeatherCurrent, &w)
	return w, err
}

func (c *DisplayClient) Forecast(ctx context.Context) (models.Forecast, error) {
	var f models.Forecast
	err := c.api.GetJSON(ctx, PathWeatherForecast, &f)
	return f, err
}

func (c *DisplayClient) Clock(ctx context.Context) (models.ServerClock, error) {
	var clk models.ServerClock
	err := c.api.GetJSON(ctx, PathDatetime, &clk)
	return clk, err
}
