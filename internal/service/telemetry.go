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

// Readings outside this range are rejected.
const (
	minSensorC = -60.0
	maxSensorC = 100.0
)

const defaultUnit = "C"

type TelemetryService struct {
	repo repository.TelemetryRepo
	pub  publish.Publisher
	log  *logger.Logger
	now  func() time.Time
}

func NewTelemetryService(repo repository.TelemetryRepo, pub publish.Publisher, log *logger.Logger) *TelemetryService {
	return &TelemetryService{repo: repo, pub: pub, log: log, now: time.Now}
}

// Record validates and stores one device document, then forwards it to the
// realtime channel. A failed publish is logged and does not fail the call.
func (s *TelemetryService) Record(ctx context.Context, doc models.DeviceTelemetry) (int64, error) {
	doc.DeviceID = strings.TrimSpace(doc.DeviceID)
	if doc.DeviceID == "" {
		return 0, fmt.Errorf("%w: device_id is required", ErrValidation)
	}
	for name, v := range map[string]float64{
		"inside":  doc.Temperatures.Inside.Value,
		"outside": doc.Temperatures.Outside.Value,
	} {
		if v < minSensorC || v > maxSensorC {
			return 0, fmt.Errorf("%w: %s temperature %.1f outside [%.0f, %.0f]", ErrValidation, name, v, minSensorC, maxSensorC)
		}
	}
	if doc.Unit == "" {
		doc.Unit = defaultUnit
	}
	now := s.now().UTC()
	if doc.Timestamp <= 0 {
		doc.Timestamp = now.Unix()
	}

	id, err := s.repo.Insert(ctx, models.TelemetryRecord{
		DeviceID:    doc.DeviceID,
		Unit:        doc.Unit,
		Timestamp:   doc.Timestamp,
		TempInside:  doc.Temperatures.Inside.Value,
		TempOutside: doc.Temperatures.Outside.Value,
		CreatedAt:   now,
	})
	if err != nil {
		return 0, err
	}

	if err := s.pub.PublishTelemetry(doc); err != nil {
		s.log.Warnw("telemetry_publish_failed", "device_id", doc.DeviceID, "err", err)
	}
	s.log.Debugw("telemetry_recorded", "id", id, "device_id", doc.DeviceID, "ts", doc.Timestamp)
	return id, nil
}
