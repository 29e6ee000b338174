package service

import (
	"context"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/publish"
	"cooling_dashboard/internal/repository"
)

// Telemetry ingests sensor documents.
type Telemetry interface {
	Record(ctx context.Context, doc models.DeviceTelemetry) (int64, error)
}

// Monitoring exposes the stored readings.
type Monitoring interface {
	History(ctx context.Context) ([]models.TelemetryRecord, error)
	Latest(ctx context.Context) (models.TelemetryRecord, bool, error)
}

// Actuator owns the desired device state.
type Actuator interface {
	GetState(ctx context.Context) (models.ActuatorRecord, error)
	UpdateState(ctx context.Context, st models.ActuatorDesiredState) (models.ActuatorRecord, error)
}

// Climate owns the AC settings.
type Climate interface {
	Settings(ctx context.Context) (models.AutomationSettings, error)
	SetManual(ctx context.Context, in models.ManualSettings) (models.AutomationSettings, error)
	SetAutomation(ctx context.Context, in models.AutomationRule) (models.AutomationSettings, error)
}

// CommandLog exposes the append-only command history.
type CommandLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CommandEntry, error)
}

// Weather serves the display widgets. It never fails; mock data stands in.
type Weather interface {
	Current(ctx context.Context) models.CurrentWeather
	Forecast(ctx context.Context) models.Forecast
}

// Simulator generates sensor readings for demos and seeding.
// Stop Run via context cancellation.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
	Seed(ctx context.Context, n int) error
}

// Service aggregates all sub-services.
type Service struct {
	Telemetry
	Monitoring
	Actuator
	Climate
	CommandLog
	Weather
	Simulator
}

// NewService wires the repository layer and the realtime publisher into the
// concrete services.
func NewService(repos *repository.Repository, pub publish.Publisher, weather Weather, historyLimit int, log *logger.Logger) *Service {
	if pub == nil {
		pub = publish.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	telemetry := NewTelemetryService(repos.Telemetry, pub, log)
	return &Service{
		Telemetry:  telemetry,
		Monitoring: NewMonitoringService(repos.Telemetry, historyLimit),
		Actuator:   NewActuatorService(repos.Actuator, repos.Commands, pub, log),
		Climate:    NewClimateService(repos.Settings, repos.Commands, pub, log),
		CommandLog: NewCommandLogService(repos.Commands),
		Weather:    weather,
		Simulator:  NewSimulatorService(telemetry, log),
	}
}
