package service

import (
	"context"
	"fmt"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/publish"
	"cooling_dashboard/internal/repository"
)

// Accepted ranges of the AC settings.
const (
	minTargetC        = 16.0
	maxTargetC        = 30.0
	minAutoThresholdC = 15.0
	maxAutoThresholdC = 40.0
)

type ClimateService struct {
	repo     repository.SettingsRepo
	recorder commandRecorder
	now      func() time.Time
}

func NewClimateService(repo repository.SettingsRepo, cmds repository.CommandRepo, pub publish.Publisher, log *logger.Logger) *ClimateService {
	return &ClimateService{
		repo:     repo,
		recorder: commandRecorder{cmds: cmds, pub: pub, log: log},
		now:      time.Now,
	}
}

// Settings returns the stored settings or the factory defaults.
func (s *ClimateService) Settings(ctx context.Context) (models.AutomationSettings, error) {
	st, ok, err := s.repo.Load(ctx)
	if err != nil {
		return models.AutomationSettings{}, err
	}
	if !ok {
		return models.DefaultAutomationSettings(), nil
	}
	return st, nil
}

// SetManual switches the unit on or off at a target temperature and mode.
func (s *ClimateService) SetManual(ctx context.Context, in models.ManualSettings) (models.AutomationSettings, error) {
	mode, ok := models.ParseClimateMode(string(in.Mode))
	if !ok {
		return models.AutomationSettings{}, fmt.Errorf("%w: mode must be cool, heat or fan, got %q", ErrValidation, in.Mode)
	}
	if in.TargetTemp < minTargetC || in.TargetTemp > maxTargetC {
		return models.AutomationSettings{}, fmt.Errorf("%w: target_temp %.1f outside [%.0f, %.0f]", ErrValidation, in.TargetTemp, minTargetC, maxTargetC)
	}

	st, err := s.Settings(ctx)
	if err != nil {
		return models.AutomationSettings{}, err
	}
	st.IsOn = in.IsOn
	st.TargetTemp = in.TargetTemp
	st.Mode = mode

	state := "OFF"
	if st.IsOn {
		state = "ON"
	}
	return s.save(ctx, st, models.CommandManual, fmt.Sprintf("AC %s, %s at %.1f°C", state, mode, st.TargetTemp), map[string]any{
		"is_on":       st.IsOn,
		"target_temp": st.TargetTemp,
		"mode":        string(mode),
	})
}

// SetAutomation updates the automatic switch-on rule.
func (s *ClimateService) SetAutomation(ctx context.Context, in models.AutomationRule) (models.AutomationSettings, error) {
	if in.ThresholdTemp < minAutoThresholdC || in.ThresholdTemp > maxAutoThresholdC {
		return models.AutomationSettings{}, fmt.Errorf("%w: threshold_temp %.1f outside [%.0f, %.0f]", ErrValidation, in.ThresholdTemp, minAutoThresholdC, maxAutoThresholdC)
	}

	st, err := s.Settings(ctx)
	if err != nil {
		return models.AutomationSettings{}, err
	}
	st.AutomationEnabled = in.AutomationEnabled
	st.ThresholdTemp = in.ThresholdTemp

	desc := "Automation disabled"
	if st.AutomationEnabled {
		desc = fmt.Sprintf("Automation enabled above %.1f°C", st.ThresholdTemp)
	}
	return s.save(ctx, st, models.CommandAutomation, desc, map[string]any{
		"automation_enabled": st.AutomationEnabled,
		"threshold_temp":     st.ThresholdTemp,
	})
}

func (s *ClimateService) save(ctx context.Context, st models.AutomationSettings, typ, desc string, details map[string]any) (models.AutomationSettings, error) {
	now := s.now().UTC()
	st.UpdatedAt = now
	if err := s.repo.Save(ctx, st); err != nil {
		return models.AutomationSettings{}, err
	}
	s.recorder.record(ctx, now, typ, desc, details)
	return st, nil
}
