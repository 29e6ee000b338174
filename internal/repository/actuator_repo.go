package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cooling_dashboard/internal/models"
)

type ActuatorSQLite struct {
	db *sql.DB
}

func NewActuatorSQLite(db *sql.DB) *ActuatorSQLite {
	return &ActuatorSQLite{db: db}
}

const (
	singleRowID = 1

	upsertActuatorSQL = `
		INSERT INTO actuator_state (id, mode_request, ac, fan, temp_threshold, advisory, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode_request=excluded.mode_request,
			ac=excluded.ac,
			fan=excluded.fan,
			temp_threshold=excluded.temp_threshold,
			advisory=excluded.advisory,
			source=excluded.source,
			updated_at=excluded.updated_at
	`

	selectActuatorSQL = `
		SELECT mode_request, ac, fan, temp_threshold, advisory, source, updated_at
		FROM actuator_state WHERE id=?
	`
)

// Save upserts the actuator_state row (id always 1). A zero UpdatedAt is set to now.
func (r *ActuatorSQLite) Save(ctx context.Context, rec models.ActuatorRecord) error {
	ts := rec.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertActuatorSQL,
		singleRowID,
		string(rec.ModeRequest),
		boolToInt(bool(rec.AC)),
		boolToInt(bool(rec.Fan)),
		rec.TempThreshold,
		rec.AdvisoryText,
		rec.Source,
		ts.UTC().Format(sqliteTimestamp),
	)
	return err
}

// Load fetches the actuator_state row. ok is false until the first Save.
func (r *ActuatorSQLite) Load(ctx context.Context) (models.ActuatorRecord, bool, error) {
	var (
		rec     models.ActuatorRecord
		mode    string
		ac, fan int
	)
	err := r.db.QueryRowContext(ctx, selectActuatorSQL, singleRowID).Scan(
		&mode,
		&ac,
		&fan,
		&rec.TempThreshold,
		&rec.AdvisoryText,
		&rec.Source,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ActuatorRecord{}, false, nil
		}
		return models.ActuatorRecord{}, false, err
	}
	rec.ModeRequest = models.Mode(mode)
	rec.AC = ac != 0
	rec.Fan = fan != 0
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
