package repository

import (
	"context"
	"database/sql"
	"time"

	"cooling_dashboard/internal/models"
)

// sqliteTimestamp is the layout of TIMESTAMP columns.
const sqliteTimestamp = "2006-01-02 15:04:05"

type TelemetryRepo interface {
	Insert(ctx context.Context, r models.TelemetryRecord) (int64, error)
	Latest(ctx context.Context, limit int) ([]models.TelemetryRecord, error)
}

type ActuatorRepo interface {
	Save(ctx context.Context, r models.ActuatorRecord) error
	Load(ctx context.Context) (models.ActuatorRecord, bool, error)
}

type SettingsRepo interface {
	Save(ctx context.Context, s models.AutomationSettings) error
	Load(ctx context.Context) (models.AutomationSettings, bool, error)
}

type CommandRepo interface {
	Append(ctx context.Context, e models.CommandEntry) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.CommandEntry, error)
}

type Repository struct {
	Telemetry TelemetryRepo
	Actuator  ActuatorRepo
	Settings  SettingsRepo
	Commands  CommandRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Telemetry: NewTelemetrySQLite(db),
		Actuator:  NewActuatorSQLite(db),
		Settings:  NewSettingsSQLite(db),
		Commands:  NewCommandSQLite(db),
	}
}
