package service

import (
	"context"
	"time"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/repository"
)

const defaultHistoryLimit = 100

type MonitoringService struct {
	repo  repository.TelemetryRepo
	limit int
}

func NewMonitoringService(repo repository.TelemetryRepo, limit int) *MonitoringService {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &MonitoringService{repo: repo, limit: limit}
}

// History returns the most recent readings, newest first.
func (s *MonitoringService) History(ctx context.Context) ([]models.TelemetryRecord, error) {
	recs, err := s.repo.Latest(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].CreatedAt = toUTC(recs[i].CreatedAt)
	}
	return recs, nil
}

// Latest returns the newest reading; ok is false when nothing is stored yet.
func (s *MonitoringService) Latest(ctx context.Context) (models.TelemetryRecord, bool, error) {
	recs, err := s.repo.Latest(ctx, 1)
	if err != nil || len(recs) == 0 {
		return models.TelemetryRecord{}, false, err
	}
	rec := recs[0]
	rec.CreatedAt = toUTC(rec.CreatedAt)
	return rec, true, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
