package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/publish"
	"cooling_dashboard/internal/repository"
)

const (
	minThresholdC = 0.0
	maxThresholdC = 60.0
)

type ActuatorService struct {
	repo     repository.ActuatorRepo
	recorder commandRecorder
	now      func() time.Time
}

func NewActuatorService(repo repository.ActuatorRepo, cmds repository.CommandRepo, pub publish.Publisher, log *logger.Logger) *ActuatorService {
	return &ActuatorService{
		repo:     repo,
		recorder: commandRecorder{cmds: cmds, pub: pub, log: log},
		now:      time.Now,
	}
}

// GetState returns the persisted desired state, or the default state of a
// fresh device when nothing has been written yet.
func (s *ActuatorService) GetState(ctx context.Context) (models.ActuatorRecord, error) {
	rec, ok, err := s.repo.Load(ctx)
	if err != nil {
		return models.ActuatorRecord{}, err
	}
	if !ok {
		return models.ActuatorRecord{ActuatorDesiredState: models.DefaultActuatorState(), UpdatedAt: s.now().UTC()}, nil
	}
	return rec, nil
}

// UpdateState replaces the whole desired state.
// - An empty mode means manual; an unknown one is rejected.
// - An empty source means the web client.
func (s *ActuatorService) UpdateState(ctx context.Context, st models.ActuatorDesiredState) (models.ActuatorRecord, error) {
	if strings.TrimSpace(string(st.ModeRequest)) == "" {
		st.ModeRequest = models.ModeManual
	}
	m, ok := models.ParseMode(string(st.ModeRequest))
	if !ok {
		return models.ActuatorRecord{}, fmt.Errorf("%w: mode_request must be manual, auto or ai, got %q", ErrValidation, st.ModeRequest)
	}
	st.ModeRequest = m
	if st.TempThreshold < minThresholdC || st.TempThreshold > maxThresholdC {
		return models.ActuatorRecord{}, fmt.Errorf("%w: temp_threshold %.1f outside [%.0f, %.0f]", ErrValidation, st.TempThreshold, minThresholdC, maxThresholdC)
	}
	if strings.TrimSpace(st.Source) == "" {
		st.Source = models.DefaultSource
	}

	now := s.now().UTC()
	rec := models.ActuatorRecord{ActuatorDesiredState: st, UpdatedAt: now}
	if err := s.repo.Save(ctx, rec); err != nil {
		return models.ActuatorRecord{}, err
	}

	s.recorder.record(ctx, now, models.CommandActuator, "Actuator state set to "+string(m), map[string]any{
		"mode_request":            string(m),
		"ac":                      boolToInt(bool(st.AC)),
		"fan":                     boolToInt(bool(st.Fan)),
		"temp_threshold":          st.TempThreshold,
		"end_user_ai_instruction": st.AdvisoryText,
		"source":                  st.Source,
	})
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
