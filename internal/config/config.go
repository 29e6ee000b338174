// Package config loads the YAML configuration of both binaries through viper.
// Every key has a default so a missing file is not fatal; environment variables
// prefixed with COOLING_ override file values (COOLING_HTTP_PORT, COOLING_LOG_LEVEL, ...).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "COOLING"

// Log holds logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MQTT holds broker settings shared by the publisher and the subscriber.
type MQTT struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	SensorTopic string `mapstructure:"sensor_topic"`
	CmdTopic    string `mapstructure:"cmd_topic"`
}

// Enabled reports whether a broker address is configured.
func (m MQTT) Enabled() bool { return strings.TrimSpace(m.Broker) != "" }

// Intervals are the fixed timers of the dashboard loop.
type Intervals struct {
	Poll      time.Duration `mapstructure:"poll"`
	Reconcile time.Duration `mapstructure:"reconcile"`
	Weather   time.Duration `mapstructure:"weather"`
	Clock     time.Duration `mapstructure:"clock"`
}

// Dashboard is the configuration of cmd/dashboard.
type Dashboard struct {
	Log          Log           `mapstructure:"log"`
	Port         string        `mapstructure:"port"`
	BackendURL   string        `mapstructure:"backend_url"`
	ActuatorPath string        `mapstructure:"actuator_path"`
	Feed         string        `mapstructure:"feed"` // ws | mqtt | none
	FeedURL      string        `mapstructure:"feed_url"`
	Capacity     int           `mapstructure:"capacity"`
	Source       string        `mapstructure:"source"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	Intervals    Intervals     `mapstructure:"intervals"`
	MQTT         MQTT          `mapstructure:"mqtt"`
}

// Weather holds OpenWeatherMap settings. An empty APIKey serves mock data.
type Weather struct {
	APIKey  string  `mapstructure:"api_key"`
	BaseURL string  `mapstructure:"base_url"`
	Lat     float64 `mapstructure:"lat"`
	Lon     float64 `mapstructure:"lon"`
	Lang    string  `mapstructure:"lang"`
}

// Server is the configuration of cmd/server.
type Server struct {
	Log            Log           `mapstructure:"log"`
	Port           string        `mapstructure:"port"`
	DBPath         string        `mapstructure:"db_path"`
	HistoryLimit   int           `mapstructure:"history_limit"`
	StreamInterval time.Duration `mapstructure:"stream_interval"`
	MQTT           MQTT          `mapstructure:"mqtt"`
	Weather        Weather       `mapstructure:"weather"`
}

// Feed kinds.
const (
	FeedWebSocket = "ws"
	FeedMQTT      = "mqtt"
	FeedNone      = "none"
)

func setDashboardDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("port", "8090")
	v.SetDefault("backend_url", "http://localhost:8080")
	v.SetDefault("actuator_path", "/api/actuator/state")
	v.SetDefault("feed", FeedWebSocket)
	v.SetDefault("feed_url", "ws://localhost:8080/ws/telemetry")
	v.SetDefault("capacity", 50)
	v.SetDefault("source", "web_client")
	v.SetDefault("http_timeout", 5*time.Second)
	v.SetDefault("intervals.poll", 5*time.Second)
	v.SetDefault("intervals.reconcile", 30*time.Second)
	v.SetDefault("intervals.weather", 30*time.Minute)
	v.SetDefault("intervals.clock", 60*time.Second)
	setMQTTDefaults(v, "cooling-dashboard")
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "iot.db")
	v.SetDefault("history_limit", 50)
	v.SetDefault("stream_interval", time.Second)
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.lat", 21.0285)
	v.SetDefault("weather.lon", 105.8542)
	v.SetDefault("weather.lang", "vi")
	setMQTTDefaults(v, "cooling-server")
}

func setMQTTDefaults(v *viper.Viper, clientID string) {
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", clientID)
	v.SetDefault("mqtt.sensor_topic", "cooling_system/sensor_data")
	v.SetDefault("mqtt.cmd_topic", "cooling_system/actuator_cmds")
}

// newViper builds an instance reading <dir>/<name>.yml with env overrides.
func newViper(dir, name string) *viper.Viper {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(name)
	v.SetConfigType("yml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// readOptional reads the config file; a missing file falls back to defaults.
func readOptional(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// LoadDashboard reads configs/<name>.yml from dir for the dashboard client.
func LoadDashboard(dir, name string) (Dashboard, error) {
	v := newViper(dir, name)
	setDashboardDefaults(v)
	if err := readOptional(v); err != nil {
		return Dashboard{}, err
	}
	var cfg Dashboard
	if err := v.Unmarshal(&cfg); err != nil {
		return Dashboard{}, fmt.Errorf("decode dashboard config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Dashboard{}, err
	}
	return cfg, nil
}

// LoadServer reads configs/<name>.yml from dir for the backend.
func LoadServer(dir, name string) (Server, error) {
	v := newViper(dir, name)
	setServerDefaults(v)
	if err := readOptional(v); err != nil {
		return Server{}, err
	}
	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, fmt.Errorf("decode server config: %w", err)
	}
	if cfg.HistoryLimit <= 0 {
		return Server{}, fmt.Errorf("history_limit must be > 0, got %d", cfg.HistoryLimit)
	}
	return cfg, nil
}

func (c Dashboard) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0, got %d", c.Capacity)
	}
	switch c.Feed {
	case FeedWebSocket, FeedMQTT, FeedNone:
	default:
		return fmt.Errorf("unknown feed %q (want ws, mqtt or none)", c.Feed)
	}
	if c.Feed == FeedMQTT && !c.MQTT.Enabled() {
		return errors.New("feed=mqtt requires mqtt.broker")
	}
	for name, d := range map[string]time.Duration{
		"intervals.poll":      c.Intervals.Poll,
		"intervals.reconcile": c.Intervals.Reconcile,
		"intervals.weather":   c.Intervals.Weather,
		"intervals.clock":     c.Intervals.Clock,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	return nil
}
