package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cooling_dashboard/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	upsertSettingsSQL = `
		INSERT INTO ac_settings (id, is_on, target_temp, mode, automation_enabled, threshold_temp, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_on=excluded.is_on,
			target_temp=excluded.target_temp,
			mode=excluded.mode,
			automation_enabled=excluded.automation_enabled,
			threshold_temp=excluded.threshold_temp,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `
		SELECT is_on, target_temp, mode, automation_enabled, threshold_temp, updated_at
		FROM ac_settings WHERE id=?
	`
)

// Save upserts the ac_settings row (id always 1).
func (r *SettingsSQLite) Save(ctx context.Context, s models.AutomationSettings) error {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertSettingsSQL,
		singleRowID,
		s.IsOn,
		s.TargetTemp,
		string(s.Mode),
		s.AutomationEnabled,
		s.ThresholdTemp,
		ts.UTC().Format(sqliteTimestamp),
	)
	return err
}

// Load fetches the ac_settings row. ok is false until the first Save.
func (r *SettingsSQLite) Load(ctx context.Context) (models.AutomationSettings, bool, error) {
	var (
		s    models.AutomationSettings
		mode string
	)
	err := r.db.QueryRowContext(ctx, selectSettingsSQL, singleRowID).Scan(
		&s.IsOn,
		&s.TargetTemp,
		&mode,
		&s.AutomationEnabled,
		&s.ThresholdTemp,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AutomationSettings{}, false, nil
		}
		return models.AutomationSettings{}, false, err
	}
	s.Mode = models.ClimateMode(mode)
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, true, nil
}
