package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/publish"
)

type fakeActuatorRepo struct {
	loadResp   models.ActuatorRecord
	loadOK     bool
	loadErr    error
	saveErr    error
	savedCalls []models.ActuatorRecord
}

func (f *fakeActuatorRepo) Load(ctx context.Context) (models.ActuatorRecord, bool, error) {
	return f.loadResp, f.loadOK, f.loadErr
}

func (f *fakeActuatorRepo) Save(ctx context.Context, r models.ActuatorRecord) error {
	f.savedCalls = append(f.savedCalls, r)
	return f.saveErr
}

func assertWithinTimeWindow(t *testing.T, ts time.Time, start time.Time, end time.Time) {
	t.Helper()
	if ts.Before(start) || ts.After(end) {
		t.Fatalf("time %v not within window [%v, %v]", ts, start, end)
	}
}

func newActuatorFixture(repo *fakeActuatorRepo) (*ActuatorService, *fakeCommandRepo, *publish.Fake) {
	cmds := &fakeCommandRepo{}
	pub := publish.NewFake()
	return NewActuatorService(repo, cmds, pub, logger.Nop()), cmds, pub
}

func TestActuatorService_GetState_DefaultsWhenEmpty(t *testing.T) {
	svc, _, _ := newActuatorFixture(&fakeActuatorRepo{})

	start := time.Now().UTC()
	got, err := svc.GetState(context.Background())
	end := time.Now().UTC()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ActuatorDesiredState != models.DefaultActuatorState() {
		t.Fatalf("expected default state, got %+v", got.ActuatorDesiredState)
	}
	assertWithinTimeWindow(t, got.UpdatedAt, start, end)
}

func TestActuatorService_GetState_ReturnsStored(t *testing.T) {
	stored := models.ActuatorRecord{
		ActuatorDesiredState: models.ActuatorDesiredState{ModeRequest: models.ModeAuto, TempThreshold: 27, Source: "esp"},
		UpdatedAt:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	svc, _, _ := newActuatorFixture(&fakeActuatorRepo{loadResp: stored, loadOK: true})

	got, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != stored {
		t.Fatalf("got %+v, want %+v", got, stored)
	}
}

func TestActuatorService_GetState_LoadError(t *testing.T) {
	svc, _, _ := newActuatorFixture(&fakeActuatorRepo{loadErr: errors.New("db down")})
	if _, err := svc.GetState(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestActuatorService_UpdateState_SavesLogsAndPublishes(t *testing.T) {
	repo := &fakeActuatorRepo{}
	svc, cmds, pub := newActuatorFixture(repo)

	in := models.ActuatorDesiredState{
		ModeRequest:   "AUTO",
		AC:            true,
		TempThreshold: 26.5,
		AdvisoryText:  "keep it cool",
	}
	start := time.Now().UTC()
	rec, err := svc.UpdateState(context.Background(), in)
	end := time.Now().UTC()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ModeRequest != models.ModeAuto {
		t.Fatalf("mode not normalized: %q", rec.ModeRequest)
	}
	if rec.Source != models.DefaultSource {
		t.Fatalf("source default not applied: %q", rec.Source)
	}
	assertWithinTimeWindow(t, rec.UpdatedAt, start, end)

	if len(repo.savedCalls) != 1 || repo.savedCalls[0] != rec {
		t.Fatalf("unexpected saves: %+v", repo.savedCalls)
	}
	if len(cmds.appends) != 1 || cmds.appends[0].Type != models.CommandActuator {
		t.Fatalf("unexpected command log: %+v", cmds.appends)
	}
	published := pub.Commands()
	if len(published) != 1 {
		t.Fatalf("expected one published command, got %d", len(published))
	}
	d := published[0].Details
	if d["mode_request"] != "auto" || d["ac"] != 1 || d["fan"] != 0 || d["temp_threshold"] != 26.5 {
		t.Fatalf("unexpected details: %+v", d)
	}
}

func TestActuatorService_UpdateState_EmptyModeMeansManual(t *testing.T) {
	svc, _, _ := newActuatorFixture(&fakeActuatorRepo{})
	rec, err := svc.UpdateState(context.Background(), models.ActuatorDesiredState{TempThreshold: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ModeRequest != models.ModeManual {
		t.Fatalf("got %q, want manual", rec.ModeRequest)
	}
}

func TestActuatorService_UpdateState_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   models.ActuatorDesiredState
	}{
		{"unknown mode", models.ActuatorDesiredState{ModeRequest: "turbo", TempThreshold: 25}},
		{"threshold too low", models.ActuatorDesiredState{ModeRequest: models.ModeAuto, TempThreshold: -1}},
		{"threshold too high", models.ActuatorDesiredState{ModeRequest: models.ModeAuto, TempThreshold: 61}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := &fakeActuatorRepo{}
			svc, cmds, pub := newActuatorFixture(repo)
			_, err := svc.UpdateState(context.Background(), c.in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(repo.savedCalls) != 0 || len(cmds.appends) != 0 || len(pub.Commands()) != 0 {
				t.Fatalf("nothing should be written on validation failure")
			}
		})
	}
}

func TestActuatorService_UpdateState_SaveErrorSkipsLog(t *testing.T) {
	repo := &fakeActuatorRepo{saveErr: errors.New("locked")}
	svc, cmds, pub := newActuatorFixture(repo)

	_, err := svc.UpdateState(context.Background(), models.DefaultActuatorState())
	if !errors.Is(err, repo.saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if len(cmds.appends) != 0 || len(pub.Commands()) != 0 {
		t.Fatalf("command must not be recorded when save fails")
	}
}
