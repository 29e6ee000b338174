package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Config selects the account and location.
type Config struct {
	APIKey  string
	BaseURL string
	Lat     float64
	Lon     float64
	Lang    string
}

// Client queries OpenWeatherMap in metric units.
type Client struct {
	api *remote.Client
	cfg Config
	loc *time.Location
}

// NewClient returns a client. A nil api targets cfg.BaseURL.
func NewClient(cfg Config, api *remote.Client) *Client {
	if api == nil {
		base := cfg.BaseURL
		if base == "" {
			base = DefaultBaseURL
		}
		api = remote.New(base, nil)
	}
	return &Client{api: api, cfg: cfg, loc: time.Local}
}

func (c *Client) query(path string) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.cfg.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.cfg.Lon, 'f', -1, 64))
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")
	if c.cfg.Lang != "" {
		q.Set("lang", c.cfg.Lang)
	}
	return path + "?" + q.Encode()
}

// Current fetches the current conditions.
func (c *Client) Current(ctx context.Context) (models.CurrentWeather, error) {
	var raw owmCurrent
	if err := c.api.GetJSON(ctx, c.query("/weather"), &raw); err != nil {
		return models.CurrentWeather{}, err
	}
	return formatCurrent(raw), nil
}

// Forecast fetches the 5-day forecast and reduces it to one entry per day.
func (c *Client) Forecast(ctx context.Context) (models.Forecast, error) {
	var raw owmForecast
	if err := c.api.GetJSON(ctx, c.query("/forecast"), &raw); err != nil {
		return models.Forecast{}, err
	}
	if len(raw.List) == 0 {
		return models.Forecast{}, fmt.Errorf("forecast: empty list")
	}
	return formatForecast(raw, c.loc), nil
}

// Service serves the widgets, using mock data without an API key or when the
// upstream call fails.
type Service struct {
	client *Client
	log    *logger.Logger
	now    func() time.Time
}

// NewService builds the provider. client may be nil for mock-only mode.
func NewService(client *Client, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{client: client, log: log, now: time.Now}
}

func (s *Service) Current(ctx context.Context) models.CurrentWeather {
	if s.client == nil {
		return MockCurrent(s.now())
	}
	w, err := s.client.Current(ctx)
	if err != nil {
		s.log.Warnw("weather_current_failed", "err", err)
		return MockCurrent(s.now())
	}
	return w
}

func (s *Service) Forecast(ctx context.Context) models.Forecast {
	if s.client == nil {
		return MockForecast(s.now())
	}
	f, err := s.client.Forecast(ctx)
	if err != nil {
		s.log.Warnw("weather_forecast_failed", "err", err)
		return MockForecast(s.now())
	}
	return f
}
