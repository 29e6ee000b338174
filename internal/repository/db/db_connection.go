package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaTelemetry = `
CREATE TABLE IF NOT EXISTS telemetry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL DEFAULT '',
    unit TEXT NOT NULL DEFAULT 'C',
    ts INTEGER NOT NULL,
    temp_inside REAL NOT NULL,
    temp_outside REAL NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaActuatorState = `
CREATE TABLE IF NOT EXISTS actuator_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    mode_request TEXT NOT NULL,
    ac INTEGER NOT NULL,
    fan INTEGER NOT NULL,
    temp_threshold REAL NOT NULL,
    advisory TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL
);
`

const schemaACSettings = `
CREATE TABLE IF NOT EXISTS ac_settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    is_on BOOLEAN NOT NULL,
    target_temp REAL NOT NULL,
    mode TEXT NOT NULL,
    automation_enabled BOOLEAN NOT NULL,
    threshold_temp REAL NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaActuatorCommands = `
CREATE TABLE IF NOT EXISTS actuator_commands (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaCommandsIndex = `
CREATE INDEX IF NOT EXISTS idx_actuator_commands_occurred_at ON actuator_commands (occurred_at);
`

const schemaTelemetryIndex = `
CREATE INDEX IF NOT EXISTS idx_telemetry_ts ON telemetry (ts);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaTelemetry,
		schemaActuatorState,
		schemaACSettings,
		schemaActuatorCommands,
		schemaCommandsIndex,
		schemaTelemetryIndex,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
