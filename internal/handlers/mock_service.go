package handlers

import (
	"context"
	"sync"
	"time"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	id      int64
	err     error
	lastDoc models.DeviceTelemetry
	calls   int
}

func (m *mockTelemetry) Record(ctx context.Context, doc models.DeviceTelemetry) (int64, error) {
	m.calls++
	m.lastDoc = doc
	return m.id, m.err
}

// mockMonitoring is safe for the websocket writer goroutine.
type mockMonitoring struct {
	mu      sync.Mutex
	history []models.TelemetryRecord
	latest  *models.TelemetryRecord
	err     error
}

func (m *mockMonitoring) History(ctx context.Context) ([]models.TelemetryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history, m.err
}

func (m *mockMonitoring) Latest(ctx context.Context) (models.TelemetryRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil || m.latest == nil {
		return models.TelemetryRecord{}, false, m.err
	}
	return *m.latest, true, nil
}

func (m *mockMonitoring) setLatest(r models.TelemetryRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = &r
}

type mockActuator struct {
	state      models.ActuatorRecord
	getErr     error
	updateErr  error
	lastUpdate models.ActuatorDesiredState
	updates    int
}

func (m *mockActuator) GetState(ctx context.Context) (models.ActuatorRecord, error) {
	return m.state, m.getErr
}

func (m *mockActuator) UpdateState(ctx context.Context, st models.ActuatorDesiredState) (models.ActuatorRecord, error) {
	m.updates++
	m.lastUpdate = st
	if m.updateErr != nil {
		return models.ActuatorRecord{}, m.updateErr
	}
	return models.ActuatorRecord{ActuatorDesiredState: st, UpdatedAt: m.state.UpdatedAt}, nil
}

type mockClimate struct {
	settings       models.AutomationSettings
	err            error
	lastManual     models.ManualSettings
	lastAutomation models.AutomationRule
}

func (m *mockClimate) Settings(ctx context.Context) (models.AutomationSettings, error) {
	return m.settings, m.err
}

func (m *mockClimate) SetManual(ctx context.Context, in models.ManualSettings) (models.AutomationSettings, error) {
	m.lastManual = in
	if m.err != nil {
		return models.AutomationSettings{}, m.err
	}
	out := m.settings
	out.IsOn, out.TargetTemp, out.Mode = in.IsOn, in.TargetTemp, in.Mode
	return out, nil
}

func (m *mockClimate) SetAutomation(ctx context.Context, in models.AutomationRule) (models.AutomationSettings, error) {
	m.lastAutomation = in
	if m.err != nil {
		return models.AutomationSettings{}, m.err
	}
	out := m.settings
	out.AutomationEnabled, out.ThresholdTemp = in.AutomationEnabled, in.ThresholdTemp
	return out, nil
}

type mockCommandLog struct {
	resp     []models.CommandEntry
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockCommandLog) List(ctx context.Context, f service.LogFilter) ([]models.CommandEntry, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockWeather struct {
	current  models.CurrentWeather
	forecast models.Forecast
}

func (m *mockWeather) Current(ctx context.Context) models.CurrentWeather { return m.current }
func (m *mockWeather) Forecast(ctx context.Context) models.Forecast      { return m.forecast }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
