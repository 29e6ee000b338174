package dashboard

import (
	"cooling_dashboard/internal/actuator"
	"cooling_dashboard/internal/mode"
	"cooling_dashboard/internal/models"
)

// event is anything the loop handles. Every event is applied on the loop
// goroutine, so handlers mutate engine state without locking.
type event interface{}

// user input

type selectModeEvent struct {
	mode  models.Mode
	reply chan error
}

type setControlEvent struct {
	control mode.Control
	patch   Patch
	reply   chan error
}

type commitEvent struct {
	patch Patch
	reply chan error
}

type reconcileEvent struct {
	reply chan error
}

type manualEvent struct {
	in    models.ManualSettings
	reply chan error
}

type automationEvent struct {
	in    models.AutomationRule
	reply chan error
}

// results of network calls started by the loop

type syncDoneEvent struct {
	res   actuator.Result
	reply chan error
}

type settingsDoneEvent struct {
	op       string
	settings models.AutomationSettings
	err      error
	reply    chan error
}

type weatherDoneEvent struct {
	current  *models.CurrentWeather
	forecast *models.Forecast
	err      error
}

type clockDoneEvent struct {
	clock models.ServerClock
	err   error
}

// queuedReply is an answer held until the loop has published the view.
type queuedReply struct {
	ch  chan error
	err error
}
