package repository

import (
	"context"
	"database/sql"
	"time"

	"cooling_dashboard/internal/models"
)

type TelemetrySQLite struct {
	db *sql.DB
}

func NewTelemetrySQLite(db *sql.DB) *TelemetrySQLite {
	return &TelemetrySQLite{db: db}
}

const (
	insertTelemetrySQL = `
		INSERT INTO telemetry (device_id, unit, ts, temp_inside, temp_outside, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectLatestTelemetrySQL = `
		SELECT id, device_id, unit, ts, temp_inside, temp_outside, created_at
		FROM telemetry ORDER BY ts DESC, id DESC LIMIT ?
	`
)

// Insert stores one reading and returns its row id. A zero CreatedAt is set to now.
func (r *TelemetrySQLite) Insert(ctx context.Context, rec models.TelemetryRecord) (int64, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertTelemetrySQL,
		rec.DeviceID,
		rec.Unit,
		rec.Timestamp,
		rec.TempInside,
		rec.TempOutside,
		created.UTC().Format(sqliteTimestamp),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Latest returns up to limit readings, newest reading time first. Rows
// stored late still sort by their own ts.
func (r *TelemetrySQLite) Latest(ctx context.Context, limit int) ([]models.TelemetryRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectLatestTelemetrySQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TelemetryRecord, 0, limit)
	for rows.Next() {
		var rec models.TelemetryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.DeviceID,
			&rec.Unit,
			&rec.Timestamp,
			&rec.TempInside,
			&rec.TempOutside,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
