package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
)

// ----------- Simulation constants -----------
const (
	SimDeviceID      = "ESP32_DEMO_001"
	SimInsideSensor  = "DHT22_INSIDE"
	SimOutsideSensor = "DHT22_OUTSIDE"
	SimIntervalS     = 5

	seedInsideBaseC  = 22.0 // °C
	seedOutsideBaseC = 25.0 // °C
	liveInsideBaseC  = 24.0 // °C
	liveOutsideBaseC = 28.0 // °C
)

// recorder is the part of TelemetryService the simulator drives.
type recorder interface {
	Record(ctx context.Context, doc models.DeviceTelemetry) (int64, error)
}

// SimulatorService produces demo readings through the normal ingest path.
type SimulatorService struct {
	rec  recorder
	log  *logger.Logger
	rnd  *rand.Rand
	now  func() time.Time
	step time.Duration
}

// NewSimulatorService returns a simulator with defaults.
func NewSimulatorService(rec recorder, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		rec:  rec,
		log:  log,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
		step: SimIntervalS * time.Second,
	}
}

// Run records one live reading per tick until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			inside := round1(liveInsideBaseC + s.uniform(-2, 2))
			outside := round1(liveOutsideBaseC + s.uniform(-3, 3))
			if _, err := s.rec.Record(ctx, simDocument(now, inside, outside)); err != nil {
				s.log.Warnw("simulated_reading_failed", "err", err)
			}
		}
	}
}

// Seed records n historical readings ending now, spaced by the device
// interval and oldest first. Temperatures follow a half-day cycle.
func (s *SimulatorService) Seed(ctx context.Context, n int) error {
	now := s.now().UTC()
	for i := n - 1; i >= 0; i-- {
		at := now.Add(-time.Duration(i) * s.step)
		cycle := float64(at.Hour() % 12)
		inside := round1(seedInsideBaseC + s.uniform(-1, 3) + cycle*0.3)
		outside := round1(seedOutsideBaseC + s.uniform(-2, 4) + cycle*0.5)
		if _, err := s.rec.Record(ctx, simDocument(at, inside, outside)); err != nil {
			return err
		}
	}
	s.log.Infow("telemetry_seeded", "count", n)
	return nil
}

func (s *SimulatorService) uniform(lo, hi float64) float64 {
	return lo + s.rnd.Float64()*(hi-lo)
}

func simDocument(at time.Time, inside, outside float64) models.DeviceTelemetry {
	return models.DeviceTelemetry{
		DeviceID:  SimDeviceID,
		IntervalS: SimIntervalS,
		Unit:      defaultUnit,
		Timestamp: at.Unix(),
		Temperatures: models.DeviceTemperatures{
			Inside:  models.SensorReading{SensorID: SimInsideSensor, Value: inside},
			Outside: models.SensorReading{SensorID: SimOutsideSensor, Value: outside},
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
