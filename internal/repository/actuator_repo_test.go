package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockArgumentFunc adapts a predicate into a sqlmock.Argument.
type sqlmockArgumentFunc func(driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool { return f(v) }

func TestActuatorSQLite_Save_EncodesSwitchesAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewActuatorSQLite(db)
	rec := models.ActuatorRecord{
		ActuatorDesiredState: models.ActuatorDesiredState{
			ModeRequest:   models.ModeAuto,
			AC:            true,
			Fan:           false,
			TempThreshold: 26,
			AdvisoryText:  "hi",
			Source:        "web_client",
		},
	}

	isRecentTimestamp := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		ts, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			return false
		}
		d := time.Since(ts)
		return d > -5*time.Second && d < 5*time.Second
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO actuator_state")).
		WithArgs(1, "auto", 1, 0, 26.0, "hi", "web_client", isRecentTimestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActuatorSQLite_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewActuatorSQLite(db)
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT mode_request, ac, fan, temp_threshold, advisory, source, updated_at")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"mode_request", "ac", "fan", "temp_threshold", "advisory", "source", "updated_at"}).
			AddRow("ai", 0, 1, 24.5, "close blinds", "device", updated))

	got, ok, err := repo.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	want := models.ActuatorRecord{
		ActuatorDesiredState: models.ActuatorDesiredState{
			ModeRequest:   models.ModeAI,
			Fan:           true,
			TempThreshold: 24.5,
			AdvisoryText:  "close blinds",
			Source:        "device",
		},
		UpdatedAt: updated,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestActuatorSQLite_Load_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT mode_request").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"mode_request"}))

	_, ok, err := repository.NewActuatorSQLite(db).Load(context.Background())
	if err != nil || ok {
		t.Fatalf("want (false, nil), got (%v, %v)", ok, err)
	}
}

func TestActuatorSQLite_Load_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT mode_request").WillReturnError(errors.New("locked"))
	if _, _, err := repository.NewActuatorSQLite(db).Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
