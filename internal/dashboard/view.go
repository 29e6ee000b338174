package dashboard

import (
	"sync"
	"time"

	"cooling_dashboard/internal/chart"
	"cooling_dashboard/internal/ingest"
	"cooling_dashboard/internal/mode"
	"cooling_dashboard/internal/models"
)

// Status holds the short status lines of the panel. Failures of any remote
// call show as "failed"; the raw error goes to Debug.
type Status struct {
	Feed       ingest.FeedState `json:"feed"`
	FeedSource string           `json:"feed_source,omitempty"`
	Poll       string           `json:"poll"`
	Actuator   string           `json:"actuator"`
	Settings   string           `json:"settings"`
	Weather    string           `json:"weather"`
	Debug      string           `json:"debug,omitempty"`
}

// Status line values besides remote.StatusText.
const (
	StatusIdle    = ""
	StatusLoading = "loading"
	StatusSaving  = "saving"
)

// View is an immutable snapshot of everything the panel renders.
type View struct {
	Mode      models.Mode                 `json:"mode"`
	Enabled   mode.Enabled                `json:"enabled"`
	Controls  Controls                    `json:"controls"`
	Desired   models.ActuatorDesiredState `json:"desired"`
	Hydrated  bool                        `json:"hydrated"`
	Pending   bool                        `json:"pending"`
	Chart     chart.Projection            `json:"chart"`
	Latest    *models.TelemetrySample     `json:"latest,omitempty"`
	Samples   int                         `json:"samples"`
	Running   bool                        `json:"running"`
	Settings  models.AutomationSettings   `json:"settings"`
	Status    Status                      `json:"status"`
	Weather   *models.CurrentWeather      `json:"weather,omitempty"`
	Forecast  *models.Forecast            `json:"forecast,omitempty"`
	Clock     *models.ServerClock         `json:"clock,omitempty"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// tracker publishes the latest View to concurrent readers. Only the engine
// loop writes.
type tracker struct {
	mu sync.RWMutex
	v  View
}

func (t *tracker) set(v View) {
	t.mu.Lock()
	t.v = v
	t.mu.Unlock()
}

func (t *tracker) get() View {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.v
}
